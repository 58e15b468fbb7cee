package response

import (
	"time"

	"github.com/sidra-games/splendid/internal/model"
)

// Room is the API view of a room record. The lobby and game state
// reuse the model's own wire shapes; the revision is what pollers
// compare to decide whether anything changed.
type Room struct {
	Code      string              `json:"code"`
	Status    string              `json:"status"`
	HostID    string              `json:"hostId"`
	Revision  int64               `json:"revision"`
	UpdatedAt time.Time           `json:"updatedAt"`
	Lobby     model.LobbySnapshot `json:"lobby"`
	Game      *model.GameState    `json:"game,omitempty"`
}

// RoomFromModel converts a model.RoomRecord to a response Room
func RoomFromModel(r *model.RoomRecord) Room {
	return Room{
		Code:      string(r.Code),
		Status:    string(r.Status),
		HostID:    string(r.HostID),
		Revision:  r.Revision,
		UpdatedAt: r.UpdatedAt,
		Lobby:     r.Lobby,
		Game:      r.Game,
	}
}

// JoinResponse reports where the occupant ended up
type JoinResponse struct {
	Room     Room   `json:"room"`
	Seat     int    `json:"seat"`
	PlayerID string `json:"playerId"`
}

// ActionResponse is the outcome of one game action
type ActionResponse struct {
	Room     Room `json:"room"`
	Accepted bool `json:"accepted"`
}

// AIStepResponse reports how many AI turns a step call played out
type AIStepResponse struct {
	Room         Room `json:"room"`
	MovesApplied int  `json:"movesApplied"`
}
