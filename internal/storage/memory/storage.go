package memory

import (
	"context"
	"sync"

	"github.com/phrasebingo/phrasebingo-go/internal/model"
	"github.com/phrasebingo/phrasebingo-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	rooms      map[model.RoomID]*model.Room
	players    map[playerKey]*model.PlayerState
	phrasePool []string
}

type playerKey struct {
	name   model.PlayerName
	roomID model.RoomID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms:   make(map[model.RoomID]*model.Room),
		players: make(map[playerKey]*model.PlayerState),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, id model.RoomID, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[id] = room
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

func (s *Storage) RoomExists(ctx context.Context, id model.RoomID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[id]
	return ok, nil
}

// Player state operations

func (s *Storage) SavePlayerState(ctx context.Context, name model.PlayerName, roomID model.RoomID, state *model.PlayerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[playerKey{name: name, roomID: roomID}] = state
	return nil
}

func (s *Storage) GetPlayerState(ctx context.Context, name model.PlayerName, roomID model.RoomID) (*model.PlayerState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.players[playerKey{name: name, roomID: roomID}]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return state, nil
}

// Phrase pool operations

func (s *Storage) SavePhrasePool(ctx context.Context, phrases []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phrasePool = make([]string, len(phrases))
	copy(s.phrasePool, phrases)
	return nil
}

func (s *Storage) GetPhrasePool(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.phrasePool == nil {
		return nil, model.ErrPhrasePoolNotFound
	}
	result := make([]string, len(s.phrasePool))
	copy(result, s.phrasePool)
	return result, nil
}
