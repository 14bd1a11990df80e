package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/phrasebingo/phrasebingo-go/internal/model"
)

type FactorySuite struct {
	suite.Suite
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactorySuite))
}

func (s *FactorySuite) TestNewDefaultsToMemory() {
	app, err := New(Config{})
	s.Require().NoError(err)

	s.NotNil(app.Storage)
	s.NotNil(app.BoardService)
	s.NotNil(app.PhrasesService)
	s.NotNil(app.RoomController)
	s.NotNil(app.SessionService)
	s.NotNil(app.Hub)
	s.NotNil(app.Gateway)
}

func (s *FactorySuite) TestNewRejectsUnknownStorageType() {
	_, err := New(Config{StorageType: "carrier-pigeon"})
	s.ErrorContains(err, "invalid StorageType")
}

func (s *FactorySuite) TestNewRequiresRedisConfig() {
	_, err := New(Config{StorageType: StorageTypeRedis})
	s.ErrorContains(err, "RedisConfig required")
}

func (s *FactorySuite) TestTestAppPlaysAGame() {
	app := NewTestApp()
	app.MockIDs.QueueTokens("abcd1234")
	ctx := context.Background()

	phrases := make([]string, 25)
	for i := range phrases {
		phrases[i] = "phrase"
	}

	roomID, err := app.RoomController.CreateRoom(ctx, "Alice", phrases)
	s.Require().NoError(err)
	s.Equal(model.RoomID("abcd1234"), roomID)

	_, state, err := app.RoomController.JoinRoom(ctx, "Bob", roomID)
	s.Require().NoError(err)
	s.Equal(5, state.Board.Size())

	var result *model.BingoResult
	for col := 0; col < 5; col++ {
		mark, err := app.RoomController.MarkCell(ctx, "Bob", roomID, 0, col)
		s.Require().NoError(err)
		result = &mark.Bingo
	}

	s.True(result.HasBingo)
	s.Equal(model.WinTypeRow, result.Type)
	s.Equal(0, result.Index)
}
