// Package redis provides a Redis-backed storage backend. Room records
// are stored as JSON values with a per-room revision counter.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sidra-games/splendid/internal/model"
	"github.com/sidra-games/splendid/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateRoom(ctx context.Context, room *model.RoomRecord) error {
	stored := room.Clone()
	stored.Revision = 0

	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}

	set, err := s.client.SetNX(ctx, roomKey(room.Code), data, s.cfg.RoomTTL).Result()
	if err != nil {
		return err
	}
	if !set {
		return model.ErrRoomExists
	}
	return s.client.Set(ctx, revisionKey(room.Code), 0, s.cfg.RoomTTL).Err()
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.RoomRecord, error) {
	data, err := s.client.Get(ctx, roomKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var room model.RoomRecord
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) UpdateRoom(ctx context.Context, room *model.RoomRecord) (*model.RoomRecord, error) {
	exists, err := s.RoomExists(ctx, room.Code)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrRoomNotFound
	}

	// INCR is atomic, so concurrent writers get distinct revisions
	// even though the record write itself is last-write-wins
	revision, err := s.client.Incr(ctx, revisionKey(room.Code)).Result()
	if err != nil {
		return nil, err
	}

	stored := room.Clone()
	stored.Revision = revision

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, roomKey(room.Code), data, s.cfg.RoomTTL)
	pipe.Expire(ctx, revisionKey(room.Code), s.cfg.RoomTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, code model.RoomCode) error {
	return s.client.Del(ctx, roomKey(code), revisionKey(code)).Err()
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	n, err := s.client.Exists(ctx, roomKey(code)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
