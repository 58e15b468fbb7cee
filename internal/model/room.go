package model

import "time"

// RoomCode is the human-readable 5-character identifier for joining rooms
type RoomCode string

// RoomStatus represents the lifecycle state of a room
type RoomStatus string

const (
	RoomStatusLobby      RoomStatus = "LOBBY"
	RoomStatusInProgress RoomStatus = "IN_PROGRESS"
	RoomStatusComplete   RoomStatus = "COMPLETE"
)

// RoomRecord is the externally persisted unit of synchronization.
// Clients hold only cached copies keyed by the last-seen revision;
// the store owns the record and stamps Revision on every write.
type RoomRecord struct {
	Code      RoomCode      `json:"roomCode"`
	Lobby     LobbySnapshot `json:"lobbySnapshot"`
	Game      *GameState    `json:"gameState"`
	Status    RoomStatus    `json:"status"`
	HostID    PlayerID      `json:"hostId,omitempty"`
	Revision  int64         `json:"revision"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Clone returns an independent deep copy
func (r *RoomRecord) Clone() *RoomRecord {
	out := *r
	out.Lobby = r.Lobby.Clone()
	if r.Game != nil {
		out.Game = r.Game.Clone()
	}
	return &out
}
