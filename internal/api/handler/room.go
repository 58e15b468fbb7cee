package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sidra-games/splendid/internal/api/request"
	"github.com/sidra-games/splendid/internal/api/response"
	"github.com/sidra-games/splendid/internal/model"
	"github.com/sidra-games/splendid/internal/services/room"
)

// RoomHandler handles lobby and room lifecycle endpoints
type RoomHandler struct {
	roomService *room.Service
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *room.Service) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// playerConfig builds an occupant config, minting an id when the
// caller did not supply one
func playerConfig(id, name string) model.PlayerConfig {
	if id == "" {
		id = uuid.NewString()
	}
	if name == "" {
		name = "Player"
	}
	return model.PlayerConfig{
		ID:      model.PlayerID(id),
		Name:    name,
		IsHuman: true,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Allow empty body for default config
		req = request.CreateRoomRequest{}
	}

	host := playerConfig(req.PlayerID, req.Name)
	record, err := h.roomService.CreateRoom(r.Context(), host, room.CreateOptions{
		TargetScore:     req.TargetScore,
		DefaultStrategy: model.StrategyID(req.DefaultStrategy),
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.JoinResponse{
		Room:     response.RoomFromModel(record),
		Seat:     0,
		PlayerID: string(host.ID),
	})
}

// Get handles GET /api/v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	record, err := h.roomService.GetRoom(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(record))
}

// Join handles POST /api/v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	preferredSeat := -1
	if req.Seat != nil {
		preferredSeat = *req.Seat
	}

	occupant := playerConfig(req.PlayerID, req.Name)
	record, seat, err := h.roomService.JoinRoom(r.Context(), code, occupant, preferredSeat)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinResponse{
		Room:     response.RoomFromModel(record),
		Seat:     seat,
		PlayerID: string(occupant.ID),
	})
}

// Leave handles POST /api/v1/rooms/{code}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	record, err := h.roomService.LeaveRoom(r.Context(), code, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	// A nil record means the room emptied out and was deleted
	if record == nil {
		response.NoContent(w)
		return
	}
	response.JSON(w, http.StatusOK, response.RoomFromModel(record))
}

// SetSeatStrategy handles PATCH /api/v1/rooms/{code}/seats/{seat}/strategy
func (h *RoomHandler) SetSeatStrategy(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := model.RoomCode(vars["code"])
	seat, err := seatIndex(vars["seat"])
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.SetSeatStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	record, err := h.roomService.SetSeatStrategy(r.Context(), code,
		model.PlayerID(req.PlayerID), seat, model.StrategyID(req.Strategy))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(record))
}

// SetDefaultStrategy handles PATCH /api/v1/rooms/{code}/strategy
func (h *RoomHandler) SetDefaultStrategy(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.SetDefaultStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	record, err := h.roomService.SetDefaultStrategy(r.Context(), code,
		model.PlayerID(req.PlayerID), model.StrategyID(req.Strategy))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(record))
}

// Kick handles POST /api/v1/rooms/{code}/kick
func (h *RoomHandler) Kick(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.KickSeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	record, err := h.roomService.KickSeat(r.Context(), code, model.PlayerID(req.PlayerID), req.Seat)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(record))
}

// Start handles POST /api/v1/rooms/{code}/start
func (h *RoomHandler) Start(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	record, err := h.roomService.StartGame(r.Context(), code, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(record))
}

// Abort handles POST /api/v1/rooms/{code}/abort
func (h *RoomHandler) Abort(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	record, err := h.roomService.AbortGame(r.Context(), code, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(record))
}
