package phrases

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrasebingo/phrasebingo-go/internal/model"
	"github.com/phrasebingo/phrasebingo-go/internal/storage"
)

// Service manages the global phrase pool: the reusable library of
// phrases offered when creating new rooms.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new phrases Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("component", "phrases")),
	}
}

// Save merges the given phrases into the pool, dropping exact
// duplicates and preserving first-seen order. It returns the pool's
// new size.
func (s *Service) Save(ctx context.Context, newPhrases []string) (int, error) {
	if len(newPhrases) == 0 {
		return 0, model.ErrInvalidInput
	}

	pool, err := s.storage.GetPhrasePool(ctx)
	if err != nil {
		if !errors.Is(err, model.ErrPhrasePoolNotFound) {
			return 0, err
		}
		pool = []string{}
	}

	seen := make(map[string]bool, len(pool))
	for _, p := range pool {
		seen[p] = true
	}

	added := 0
	for _, p := range newPhrases {
		if seen[p] {
			continue
		}
		seen[p] = true
		pool = append(pool, p)
		added++
	}

	if err := s.storage.SavePhrasePool(ctx, pool); err != nil {
		return 0, err
	}

	s.logger.Info("phrases saved",
		slog.Int("added", added),
		slog.Int("pool_size", len(pool)))

	return len(pool), nil
}

// Get returns the saved pool, or an empty slice if it was never
// initialized.
func (s *Service) Get(ctx context.Context) ([]string, error) {
	pool, err := s.storage.GetPhrasePool(ctx)
	if err != nil {
		if errors.Is(err, model.ErrPhrasePoolNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	return pool, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Save(ctx context.Context, newPhrases []string) (int, error)
	Get(ctx context.Context) ([]string, error)
}

var _ ServiceInterface = (*Service)(nil)
