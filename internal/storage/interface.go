// Package storage defines the persistence interface for room records.
package storage

import (
	"context"

	"github.com/sidra-games/splendid/internal/model"
)

// Storage defines the interface for room persistence. Writes are
// whole-record replaces: the backend stamps a fresh revision on every
// update and concurrent writers race last-write-wins, with the
// revision number letting pollers detect that anything changed.
type Storage interface {
	// CreateRoom persists a new record at revision 0.
	// Returns model.ErrRoomExists when the code is already taken.
	CreateRoom(ctx context.Context, room *model.RoomRecord) error

	// GetRoom fetches a record by code.
	// Returns model.ErrRoomNotFound when absent.
	GetRoom(ctx context.Context, code model.RoomCode) (*model.RoomRecord, error)

	// UpdateRoom replaces the stored record wholesale, stamping the
	// next revision, and returns the record as stored.
	// Returns model.ErrRoomNotFound when absent.
	UpdateRoom(ctx context.Context, room *model.RoomRecord) (*model.RoomRecord, error)

	// DeleteRoom removes a record. Deleting an absent room is not an error.
	DeleteRoom(ctx context.Context, code model.RoomCode) error

	// RoomExists reports whether a code is taken
	RoomExists(ctx context.Context, code model.RoomCode) (bool, error)

	// Close releases backend resources
	Close() error
}
