package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/phrasebingo/phrasebingo-go/internal/dependencies/clock"
	"github.com/phrasebingo/phrasebingo-go/internal/dependencies/ids"
	"github.com/phrasebingo/phrasebingo-go/internal/dependencies/random"
	"github.com/phrasebingo/phrasebingo-go/internal/services/board"
	"github.com/phrasebingo/phrasebingo-go/internal/services/phrases"
	"github.com/phrasebingo/phrasebingo-go/internal/services/room"
	"github.com/phrasebingo/phrasebingo-go/internal/services/session"
	"github.com/phrasebingo/phrasebingo-go/internal/storage"
	"github.com/phrasebingo/phrasebingo-go/internal/storage/memory"
	redisstorage "github.com/phrasebingo/phrasebingo-go/internal/storage/redis"
	"github.com/phrasebingo/phrasebingo-go/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	IDs    ids.Generator

	// Services
	BoardService   *board.Service
	PhrasesService *phrases.Service
	RoomController *room.Controller
	SessionService *session.Service

	// Real-time gateway
	Hub     *ws.Hub
	Gateway *ws.Gateway
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SessionConfig holds session settings (optional)
	// If zero value, defaults to session.DefaultConfig()
	SessionConfig session.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()
	idGen := ids.New()

	sessionCfg := cfg.SessionConfig
	if sessionCfg.Duration == 0 {
		sessionCfg = session.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, idGen, sessionCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, idGen ids.Generator, sessionCfg session.Config, logger *slog.Logger) *App {
	boardService := board.New(rnd)
	phrasesService := phrases.New(store, logger)
	roomController := room.NewController(store, boardService, idGen, logger)
	sessionService := session.New(clk, sessionCfg)
	hub := ws.NewHub(logger)
	gateway := ws.NewGateway(hub, roomController, phrasesService, sessionService, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		IDs:            idGen,
		BoardService:   boardService,
		PhrasesService: phrasesService,
		RoomController: roomController,
		SessionService: sessionService,
		Hub:            hub,
		Gateway:        gateway,
	}
}
