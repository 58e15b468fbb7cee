package redis

import (
	"fmt"

	"github.com/sidra-games/splendid/internal/model"
)

// Key prefix for all room data
const keyPrefix = "splendid"

// roomKey returns the Redis key for a room's JSON record
func roomKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, code)
}

// revisionKey returns the Redis key for a room's revision counter.
// Kept separate from the record so stamping is a plain INCR.
func revisionKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:room:%s:rev", keyPrefix, code)
}
