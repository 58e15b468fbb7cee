package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomExists       = errors.New("room code already in use")
	ErrRoomFull         = errors.New("room has no open seats")
	ErrNotInRoom        = errors.New("player is not seated in room")
	ErrNotHost          = errors.New("player is not the host")
	ErrGameInProgress   = errors.New("game is in progress")
	ErrNoGameInProgress = errors.New("no game in progress")
	ErrInvalidSeat      = errors.New("invalid seat index")
	ErrCodeExhausted    = errors.New("could not allocate a unique room code")

	// Game errors
	ErrNotPlayerTurn   = errors.New("not this player's turn")
	ErrGameComplete    = errors.New("game is already complete")
	ErrUnknownStrategy = errors.New("unknown AI strategy")
	ErrCardNotFound    = errors.New("card not found")

	// Storage errors
	ErrStoreUnconfigured = errors.New("room store is not configured")

	// Catalog errors
	ErrCatalogEmpty = errors.New("card catalog is empty")
)
