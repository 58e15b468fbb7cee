package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/sidra-games/splendid/internal/catalog"
	"github.com/sidra-games/splendid/internal/dependencies/clock"
	"github.com/sidra-games/splendid/internal/dependencies/random"
	"github.com/sidra-games/splendid/internal/services/ai"
	"github.com/sidra-games/splendid/internal/services/engine"
	"github.com/sidra-games/splendid/internal/services/room"
	"github.com/sidra-games/splendid/internal/storage"
	"github.com/sidra-games/splendid/internal/storage/memory"
	pgstorage "github.com/sidra-games/splendid/internal/storage/postgres"
	redisstorage "github.com/sidra-games/splendid/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// DefaultCatalogPath is where the card table ships relative to the
// working directory
const DefaultCatalogPath = "data/cards.txt"

// App contains all wired application components
type App struct {
	Storage storage.Storage
	Catalog *catalog.Catalog

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Engine      *engine.Engine
	AIService   *ai.Service
	RoomService *room.Service
	HostDriver  *room.HostDriver
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// CatalogPath is the card table location. Defaults to
	// DefaultCatalogPath when empty.
	CatalogPath string
	// StorageType selects the storage backend ("memory", "redis" or
	// "postgres"). If empty, defaults to "memory".
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds Postgres connection settings (required if
	// StorageType is "postgres")
	PostgresConfig *pgstorage.Config
	// GeminiAPIKey enables the remote AI strategies. When empty the
	// remote strategy ids fall back to the balanced heuristic.
	GeminiAPIKey string
	// GeminiBaseURL overrides the generation endpoint (tests)
	GeminiBaseURL string
	// ThinkDelay is the pause before each AI move. Negative values
	// select the default; zero disables the delay.
	ThinkDelay time.Duration
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	catalogPath := cfg.CatalogPath
	if catalogPath == "" {
		catalogPath = DefaultCatalogPath
	}
	cat, err := catalog.LoadFile(catalogPath, logger)
	if err != nil {
		return nil, err
	}

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var remote ai.RemoteMover
	if cfg.GeminiAPIKey != "" {
		remote = ai.NewGenerateClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, logger)
	}

	return newWithDependencies(store, cat, remote, clock.New(), random.New(), cfg.ThinkDelay, logger), nil
}

func newStorage(ctx context.Context, cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		return pgstorage.New(ctx, *cfg.PostgresConfig)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, cat *catalog.Catalog, remote ai.RemoteMover, clk clock.Clock, rnd random.Random, thinkDelay time.Duration, logger *slog.Logger) *App {
	eng := engine.New(clk)
	aiService := ai.NewService(remote, rnd, logger)
	roomService := room.NewService(store, eng, cat, clk, rnd, logger)
	hostDriver := room.NewHostDriver(roomService, aiService, eng, thinkDelay, logger)

	return &App{
		Storage:     store,
		Catalog:     cat,
		Clock:       clk,
		Random:      rnd,
		Engine:      eng,
		AIService:   aiService,
		RoomService: roomService,
		HostDriver:  hostDriver,
	}
}
