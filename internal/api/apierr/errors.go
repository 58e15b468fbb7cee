package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sidra-games/splendid/internal/model"
	"github.com/sidra-games/splendid/internal/services/engine"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeRoomNotFound     = "ROOM_NOT_FOUND"
	CodeRoomFull         = "ROOM_FULL"
	CodeNotInRoom        = "NOT_IN_ROOM"
	CodeNotHost          = "NOT_HOST"
	CodeNotYourTurn      = "NOT_YOUR_TURN"
	CodeGameInProgress   = "GAME_IN_PROGRESS"
	CodeNoGameInProgress = "NO_GAME_IN_PROGRESS"
	CodeGameComplete     = "GAME_COMPLETE"
	CodeInvalidSeat      = "INVALID_SEAT"
	CodeUnknownStrategy  = "UNKNOWN_STRATEGY"
	CodeCardNotFound     = "CARD_NOT_FOUND"
	CodeIllegalAction    = "ILLEGAL_ACTION"
	CodeCodeExhausted    = "ROOM_CODES_EXHAUSTED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrRoomFull):
		return &httpError{http.StatusConflict, APIError{CodeRoomFull, "Room has no open seats"}}
	case errors.Is(err, model.ErrNotInRoom):
		return &httpError{http.StatusNotFound, APIError{CodeNotInRoom, "Player is not seated in this room"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrGameInProgress):
		return &httpError{http.StatusConflict, APIError{CodeGameInProgress, "Game is already in progress"}}
	case errors.Is(err, model.ErrNoGameInProgress):
		return &httpError{http.StatusConflict, APIError{CodeNoGameInProgress, "No game in progress"}}
	case errors.Is(err, model.ErrGameComplete):
		return &httpError{http.StatusConflict, APIError{CodeGameComplete, "Game is already complete"}}
	case errors.Is(err, model.ErrInvalidSeat):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSeat, "Invalid seat index"}}
	case errors.Is(err, model.ErrUnknownStrategy):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownStrategy, "Unknown AI strategy"}}
	case errors.Is(err, model.ErrCardNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeCardNotFound, "Card not found"}}
	case errors.Is(err, model.ErrCodeExhausted):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeCodeExhausted, "Could not allocate a room code"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewRejectedActionError reports an action the game rules refused.
// The reject reason becomes part of the message so clients can show it.
func NewRejectedActionError(reason engine.RejectReason) error {
	return &httpError{
		http.StatusUnprocessableEntity,
		APIError{CodeIllegalAction, fmt.Sprintf("Action rejected: %s", reason)},
	}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
