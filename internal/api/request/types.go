package request

// CreateRoomRequest creates a room with the caller as host.
// PlayerID is optional; a fresh id is minted when absent.
type CreateRoomRequest struct {
	PlayerID        string `json:"player_id,omitempty"`
	Name            string `json:"name"`
	TargetScore     int    `json:"target_score,omitempty"`
	DefaultStrategy string `json:"default_strategy,omitempty"`
}

// JoinRoomRequest seats the caller in a room. Seat is a preferred
// index; omitted means first open seat.
type JoinRoomRequest struct {
	PlayerID string `json:"player_id,omitempty"`
	Name     string `json:"name"`
	Seat     *int   `json:"seat,omitempty"`
}

// PlayerRequest identifies the acting player for host or seat checks
type PlayerRequest struct {
	PlayerID string `json:"player_id"`
}

// SetSeatStrategyRequest assigns an AI strategy to one seat
type SetSeatStrategyRequest struct {
	PlayerID string `json:"player_id"`
	Strategy string `json:"strategy"`
}

// SetDefaultStrategyRequest changes the lobby's default AI strategy
type SetDefaultStrategyRequest struct {
	PlayerID string `json:"player_id"`
	Strategy string `json:"strategy"`
}

// KickSeatRequest vacates one seat
type KickSeatRequest struct {
	PlayerID string `json:"player_id"`
	Seat     int    `json:"seat"`
}

// Action kinds accepted by the actions endpoint
const (
	ActionTakeGems = "take_gems"
	ActionReserve  = "reserve"
	ActionBuy      = "buy"
	ActionPass     = "pass"
)

// ActionRequest applies one game action for the current player
type ActionRequest struct {
	PlayerID string `json:"player_id"`
	Kind     string `json:"kind"`

	// take_gems
	Gems []string `json:"gems,omitempty"`

	// reserve / buy
	CardID      string `json:"card_id,omitempty"`
	DeckLevel   int    `json:"deck_level,omitempty"` // blind reserve from a deck
	FromReserve bool   `json:"from_reserve,omitempty"`
}
