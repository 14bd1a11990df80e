package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phrasebingo/phrasebingo-go/internal/model"
	"github.com/phrasebingo/phrasebingo-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// One JSON blob per key; no locking beyond single-key atomicity.
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

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, id model.RoomID, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, roomKey(id), data, s.cfg.RoomTTL).Err()
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	data, err := s.client.Get(ctx, roomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) RoomExists(ctx context.Context, id model.RoomID) (bool, error) {
	exists, err := s.client.Exists(ctx, roomKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Player state operations

func (s *Storage) SavePlayerState(ctx context.Context, name model.PlayerName, roomID model.RoomID, state *model.PlayerState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, playerKey(name, roomID), data, s.cfg.PlayerTTL).Err()
}

func (s *Storage) GetPlayerState(ctx context.Context, name model.PlayerName, roomID model.RoomID) (*model.PlayerState, error) {
	data, err := s.client.Get(ctx, playerKey(name, roomID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var state model.PlayerState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Phrase pool operations

func (s *Storage) SavePhrasePool(ctx context.Context, phrases []string) error {
	data, err := json.Marshal(phrases)
	if err != nil {
		return err
	}

	// The pool is a global library, not tied to any room's lifetime
	return s.client.Set(ctx, phrasePoolKey(), data, 0).Err()
}

func (s *Storage) GetPhrasePool(ctx context.Context) ([]string, error) {
	data, err := s.client.Get(ctx, phrasePoolKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPhrasePoolNotFound
		}
		return nil, err
	}

	var phrases []string
	if err := json.Unmarshal(data, &phrases); err != nil {
		return nil, err
	}
	return phrases, nil
}
