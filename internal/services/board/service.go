package board

import (
	"github.com/phrasebingo/phrasebingo-go/internal/dependencies/random"
	"github.com/phrasebingo/phrasebingo-go/internal/model"
)

// Service generates randomized boards from a phrase pool
type Service struct {
	random random.Random
}

// New creates a new board Service
func New(random random.Random) *Service {
	return &Service{
		random: random,
	}
}

// Generate builds a size x size grid of unmarked cells from the given
// phrases. The pool is shuffled independently per call and never
// mutated; when the shuffled pool is shorter than size*size it repeats
// cyclically until long enough. For a 5x5 board the center cell is the
// FREE sentinel, pre-marked.
func (s *Service) Generate(phrases []string, size int) (model.Board, error) {
	if len(phrases) == 0 {
		return nil, model.ErrInvalidInput
	}

	shuffled := make([]string, len(phrases))
	copy(shuffled, phrases)
	s.random.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	required := size * size
	selected := make([]string, 0, required)
	for len(selected) < required {
		selected = append(selected, shuffled...)
	}
	selected = selected[:required]

	board := make(model.Board, size)
	for row := 0; row < size; row++ {
		board[row] = make([]model.Cell, size)
		for col := 0; col < size; col++ {
			if size == 5 && row == 2 && col == 2 {
				board[row][col] = model.Cell{Text: model.FreeCellText, Marked: true}
				continue
			}
			board[row][col] = model.Cell{Text: selected[row*size+col]}
		}
	}

	return board, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Generate(phrases []string, size int) (model.Board, error)
}

var _ ServiceInterface = (*Service)(nil)
