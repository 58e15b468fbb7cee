package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sidra-games/splendid/internal/api/apierr"
	"github.com/sidra-games/splendid/internal/api/request"
	"github.com/sidra-games/splendid/internal/api/response"
	"github.com/sidra-games/splendid/internal/model"
	"github.com/sidra-games/splendid/internal/services/engine"
	"github.com/sidra-games/splendid/internal/services/room"
)

// GameHandler handles in-game action endpoints
type GameHandler struct {
	roomService *room.Service
	engine      *engine.Engine
	driver      *room.HostDriver
}

// NewGameHandler creates a new game handler
func NewGameHandler(roomService *room.Service, eng *engine.Engine, driver *room.HostDriver) *GameHandler {
	return &GameHandler{
		roomService: roomService,
		engine:      eng,
		driver:      driver,
	}
}

func seatIndex(raw string) (int, error) {
	seat, err := strconv.Atoi(raw)
	if err != nil {
		return 0, NewInvalidRequestError("seat must be an integer")
	}
	return seat, nil
}

// Action handles POST /api/v1/rooms/{code}/actions
func (h *GameHandler) Action(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	record, err := h.roomService.GetRoom(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}
	if record.Status != model.RoomStatusInProgress || record.Game == nil {
		WriteError(w, model.ErrNoGameInProgress)
		return
	}

	state := record.Game
	if state.CurrentPlayer().ID != model.PlayerID(req.PlayerID) {
		WriteError(w, model.ErrNotPlayerTurn)
		return
	}

	res, err := h.applyAction(state, req)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !res.Accepted {
		WriteError(w, apierr.NewRejectedActionError(res.Reason))
		return
	}

	updated, err := h.roomService.SaveGameState(r.Context(), code, res.State)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ActionResponse{
		Room:     response.RoomFromModel(updated),
		Accepted: true,
	})
}

func (h *GameHandler) applyAction(state *model.GameState, req request.ActionRequest) (engine.Result, error) {
	switch req.Kind {
	case request.ActionTakeGems:
		colors := make([]model.GemColor, 0, len(req.Gems))
		for _, raw := range req.Gems {
			if !model.ValidGemColor(raw) {
				return engine.Result{}, NewInvalidRequestError("unknown gem color: " + raw)
			}
			colors = append(colors, model.GemColor(raw))
		}
		return h.engine.TakeGems(state, colors), nil

	case request.ActionReserve:
		if req.DeckLevel != 0 {
			return h.engine.ReserveCard(state, "", req.DeckLevel), nil
		}
		if req.CardID == "" {
			return engine.Result{}, NewInvalidRequestError("card_id or deck_level is required")
		}
		return h.engine.ReserveCard(state, model.CardID(req.CardID), 0), nil

	case request.ActionBuy:
		if req.CardID == "" {
			return engine.Result{}, NewInvalidRequestError("card_id is required")
		}
		return h.engine.BuyCard(state, model.CardID(req.CardID), req.FromReserve), nil

	case request.ActionPass:
		return h.engine.PassTurn(state, "", "human"), nil

	default:
		return engine.Result{}, NewInvalidRequestError("unknown action kind: " + req.Kind)
	}
}

// AIStep handles POST /api/v1/rooms/{code}/ai-step.
// The hosting client calls this after its own move (and from its poll
// loop) to let consecutive AI seats play until a human is up.
func (h *GameHandler) AIStep(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	applied, err := h.driver.Step(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	record, err := h.roomService.GetRoom(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AIStepResponse{
		Room:         response.RoomFromModel(record),
		MovesApplied: applied,
	})
}
