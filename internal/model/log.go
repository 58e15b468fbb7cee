package model

import "time"

// LogKind identifies the type of an action log entry
type LogKind string

const (
	LogTakeGems LogKind = "TAKE_GEMS"
	LogReserve  LogKind = "RESERVE"
	LogBuy      LogKind = "BUY"
	LogPass     LogKind = "PASS"
	LogNoble    LogKind = "NOBLE"
	LogSystem   LogKind = "SYSTEM"
)

// ActionLogEntry is one record of the append-only match history.
// Entries are never mutated after creation; a UI replays them as the
// canonical audit trail.
type ActionLogEntry struct {
	Turn       int            `json:"turn"`
	PlayerID   PlayerID       `json:"playerId"`
	PlayerName string         `json:"playerName"`
	Kind       LogKind        `json:"kind"`
	Summary    string         `json:"summary"`
	Payload    map[string]any `json:"payload,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}
