// Package memory provides an in-memory storage backend, used for
// single-process deployments and tests.
package memory

import (
	"context"
	"sync"

	"github.com/sidra-games/splendid/internal/model"
	"github.com/sidra-games/splendid/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu    sync.RWMutex
	rooms map[model.RoomCode]*model.RoomRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms: make(map[model.RoomCode]*model.RoomRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateRoom(ctx context.Context, room *model.RoomRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.Code]; ok {
		return model.ErrRoomExists
	}
	stored := room.Clone()
	stored.Revision = 0
	s.rooms[room.Code] = stored
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.RoomRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (s *Storage) UpdateRoom(ctx context.Context, room *model.RoomRecord) (*model.RoomRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.rooms[room.Code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	stored := room.Clone()
	stored.Revision = existing.Revision + 1
	s.rooms[room.Code] = stored
	return stored.Clone(), nil
}

func (s *Storage) DeleteRoom(ctx context.Context, code model.RoomCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
	return nil
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[code]
	return ok, nil
}

// Close is a no-op for the in-memory backend
func (s *Storage) Close() error {
	return nil
}
