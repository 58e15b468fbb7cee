package model

// LobbySeat is one of the four fixed lobby slots. An unoccupied seat
// spawns an AI opponent using its configured strategy at game start.
type LobbySeat struct {
	Occupant   *PlayerConfig `json:"occupant"`
	StrategyID StrategyID    `json:"strategyId"`
}

// LobbySnapshot is the whole lobby configuration for a room. It is
// always replaced wholesale on write, never partially patched.
type LobbySnapshot struct {
	Seats           []LobbySeat `json:"seats"` // always SeatCount long
	HostID          PlayerID    `json:"hostId,omitempty"`
	TargetScore     int         `json:"targetScore"`
	DefaultStrategy StrategyID  `json:"defaultStrategy"`
}

// NewLobbySnapshot returns an empty lobby with every seat configured
// to the given default AI strategy
func NewLobbySnapshot(defaultStrategy StrategyID) LobbySnapshot {
	if defaultStrategy == "" {
		defaultStrategy = StrategyBalanced
	}
	seats := make([]LobbySeat, SeatCount)
	for i := range seats {
		seats[i] = LobbySeat{StrategyID: defaultStrategy}
	}
	return LobbySnapshot{
		Seats:           seats,
		TargetScore:     TargetScoreDefault,
		DefaultStrategy: defaultStrategy,
	}
}

// Clone returns an independent deep copy
func (l LobbySnapshot) Clone() LobbySnapshot {
	out := l
	out.Seats = make([]LobbySeat, len(l.Seats))
	for i, seat := range l.Seats {
		out.Seats[i] = seat
		if seat.Occupant != nil {
			occ := *seat.Occupant
			out.Seats[i].Occupant = &occ
		}
	}
	return out
}

// FirstOpenSeat returns the index of the first unoccupied seat, or -1
func (l *LobbySnapshot) FirstOpenSeat() int {
	for i, seat := range l.Seats {
		if seat.Occupant == nil {
			return i
		}
	}
	return -1
}

// SeatOf returns the index of the seat the player occupies, or -1
func (l *LobbySnapshot) SeatOf(id PlayerID) int {
	for i, seat := range l.Seats {
		if seat.Occupant != nil && seat.Occupant.ID == id {
			return i
		}
	}
	return -1
}

// OccupantCount returns the number of occupied seats
func (l *LobbySnapshot) OccupantCount() int {
	n := 0
	for _, seat := range l.Seats {
		if seat.Occupant != nil {
			n++
		}
	}
	return n
}
