package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sidra-games/splendid/internal/api/handler"
	"github.com/sidra-games/splendid/internal/api/middleware"
	"github.com/sidra-games/splendid/internal/services/engine"
	"github.com/sidra-games/splendid/internal/services/room"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	RoomService *room.Service
	Engine      *engine.Engine
	HostDriver  *room.HostDriver
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.RoomService)
	gameHandler := handler.NewGameHandler(cfg.RoomService, cfg.Engine, cfg.HostDriver)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Room lifecycle
	api.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{code}/join", roomHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/leave", roomHandler.Leave).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/kick", roomHandler.Kick).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/seats/{seat}/strategy", roomHandler.SetSeatStrategy).Methods(http.MethodPatch)
	api.HandleFunc("/rooms/{code}/strategy", roomHandler.SetDefaultStrategy).Methods(http.MethodPatch)

	// Game lifecycle and actions
	api.HandleFunc("/rooms/{code}/start", roomHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/abort", roomHandler.Abort).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/actions", gameHandler.Action).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/ai-step", gameHandler.AIStep).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
