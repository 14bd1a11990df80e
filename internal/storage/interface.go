package storage

import (
	"context"

	"github.com/phrasebingo/phrasebingo-go/internal/model"
)

// Storage defines the interface for data persistence.
//
// Every record is an opaque blob behind a single key; there are no
// transactions or compare-and-set, so read-modify-write sequences by
// concurrent callers can lose updates (last write wins). Callers own
// that trade-off.
type Storage interface {
	// Room operations
	SaveRoom(ctx context.Context, id model.RoomID, room *model.Room) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	RoomExists(ctx context.Context, id model.RoomID) (bool, error)

	// Player state operations
	SavePlayerState(ctx context.Context, name model.PlayerName, roomID model.RoomID, state *model.PlayerState) error
	GetPlayerState(ctx context.Context, name model.PlayerName, roomID model.RoomID) (*model.PlayerState, error)

	// Phrase pool operations
	SavePhrasePool(ctx context.Context, phrases []string) error
	GetPhrasePool(ctx context.Context) ([]string, error)
}
