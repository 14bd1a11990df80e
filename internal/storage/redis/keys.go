package redis

import (
	"fmt"

	"github.com/phrasebingo/phrasebingo-go/internal/model"
)

// Key formats are part of the stored-data contract: room:<id>,
// player:<name>:<room_id>, and a singleton key for the phrase pool.

// roomKey returns the Redis key for a Room
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("room:%s", id)
}

// playerKey returns the Redis key for a player's per-room state
func playerKey(name model.PlayerName, roomID model.RoomID) string {
	return fmt.Sprintf("player:%s:%s", name, roomID)
}

// phrasePoolKey returns the Redis key for the global phrase pool
func phrasePoolKey() string {
	return "saved_phrases"
}
