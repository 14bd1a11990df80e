package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrasebingo/phrasebingo-go/internal/dependencies/ids"
	"github.com/phrasebingo/phrasebingo-go/internal/model"
	"github.com/phrasebingo/phrasebingo-go/internal/services/bingo"
	"github.com/phrasebingo/phrasebingo-go/internal/services/board"
	"github.com/phrasebingo/phrasebingo-go/internal/services/username"
	"github.com/phrasebingo/phrasebingo-go/internal/storage"
)

// Controller orchestrates room creation, joining, and cell marking
// against the store. Every operation is a plain read-modify-write:
// concurrent writers to the same room or player state can lose an
// update, matching the store's single-key guarantees.
type Controller struct {
	storage storage.Storage
	boards  board.ServiceInterface
	ids     ids.Generator
	logger  *slog.Logger
}

// NewController creates a new room Controller
func NewController(storage storage.Storage, boards board.ServiceInterface, ids ids.Generator, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		boards:  boards,
		ids:     ids,
		logger:  logger.With(slog.String("component", "room")),
	}
}

// MarkResult is the outcome of a MarkCell call
type MarkResult struct {
	Row    int
	Col    int
	Marked bool
	State  *model.PlayerState
	Bingo  model.BingoResult
}

// CreateRoom creates a room owned by the given creator and persists
// the creator's board. It returns the new room's ID.
func (c *Controller) CreateRoom(ctx context.Context, creator string, phrases []string) (model.RoomID, error) {
	if valid, reason := username.Validate(creator); !valid {
		return "", fmt.Errorf("%w: %s", model.ErrInvalidUsername, reason)
	}
	if len(phrases) == 0 {
		return "", model.ErrInvalidInput
	}

	// Token collisions are vanishingly unlikely but cheap to retry
	var roomID model.RoomID
	for {
		roomID = model.RoomID(c.ids.RoomToken())
		exists, err := c.storage.RoomExists(ctx, roomID)
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
	}

	name := model.PlayerName(creator)
	room := &model.Room{
		Creator: name,
		Phrases: phrases,
		Players: []model.PlayerName{name},
		Size:    model.DefaultBoardSize,
	}

	if err := c.storage.SaveRoom(ctx, roomID, room); err != nil {
		return "", err
	}

	b, err := c.boards.Generate(room.Phrases, room.Size)
	if err != nil {
		return "", err
	}
	state := &model.PlayerState{Board: b}
	if err := c.storage.SavePlayerState(ctx, name, roomID, state); err != nil {
		return "", err
	}

	c.logger.Info("room created",
		slog.String("room_id", string(roomID)),
		slog.String("creator", creator),
		slog.Int("phrases", len(phrases)))

	return roomID, nil
}

// GetRoom retrieves a room by ID
func (c *Controller) GetRoom(ctx context.Context, roomID model.RoomID) (*model.Room, error) {
	return c.storage.GetRoom(ctx, roomID)
}

// JoinRoom adds a player to a room, generating their board on first
// join. Joining again under the same name is idempotent: the existing
// board is returned, never regenerated.
func (c *Controller) JoinRoom(ctx context.Context, player string, roomID model.RoomID) (*model.Room, *model.PlayerState, error) {
	if valid, reason := username.Validate(player); !valid {
		return nil, nil, fmt.Errorf("%w: %s", model.ErrInvalidUsername, reason)
	}

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}

	name := model.PlayerName(player)
	if !room.HasPlayer(name) {
		room.Players = append(room.Players, name)
		if err := c.storage.SaveRoom(ctx, roomID, room); err != nil {
			return nil, nil, err
		}
	}

	state, err := c.storage.GetPlayerState(ctx, name, roomID)
	if err != nil {
		if !errors.Is(err, model.ErrPlayerNotFound) {
			return nil, nil, err
		}
		b, genErr := c.boards.Generate(room.Phrases, room.Size)
		if genErr != nil {
			return nil, nil, genErr
		}
		state = &model.PlayerState{Board: b}
		if err := c.storage.SavePlayerState(ctx, name, roomID, state); err != nil {
			return nil, nil, err
		}
	}

	c.logger.Info("player joined room",
		slog.String("room_id", string(roomID)),
		slog.String("player", player))

	return room, state, nil
}

// MarkCell toggles the marked state of one cell on a player's board,
// re-runs win detection over the whole board, and persists the result.
// The has-bingo flag is sticky: a toggle that breaks the winning line
// does not retract it.
func (c *Controller) MarkCell(ctx context.Context, player string, roomID model.RoomID, row, col int) (*MarkResult, error) {
	name := model.PlayerName(player)

	state, err := c.storage.GetPlayerState(ctx, name, roomID)
	if err != nil {
		return nil, err
	}

	pos := model.Position{Row: row, Col: col}
	if !state.Board.IsValidPosition(pos) {
		return nil, model.ErrOutOfBounds
	}

	marked := state.Board.Toggle(pos)

	result := bingo.Check(state.Board)
	if result.HasBingo {
		state.HasBingo = true
		state.WinningCells = result.WinningCells
	}

	if err := c.storage.SavePlayerState(ctx, name, roomID, state); err != nil {
		return nil, err
	}

	return &MarkResult{
		Row:    row,
		Col:    col,
		Marked: marked,
		State:  state,
		Bingo:  result,
	}, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateRoom(ctx context.Context, creator string, phrases []string) (model.RoomID, error)
	GetRoom(ctx context.Context, roomID model.RoomID) (*model.Room, error)
	JoinRoom(ctx context.Context, player string, roomID model.RoomID) (*model.Room, *model.PlayerState, error)
	MarkCell(ctx context.Context, player string, roomID model.RoomID, row, col int) (*MarkResult, error)
}

var _ ControllerInterface = (*Controller)(nil)
