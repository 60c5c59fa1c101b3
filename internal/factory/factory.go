package factory

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gameontext/gameon-player/internal/config"
	"github.com/gameontext/gameon-player/internal/dependencies/clock"
	"github.com/gameontext/gameon-player/internal/dependencies/random"
	"github.com/gameontext/gameon-player/internal/model"
	"github.com/gameontext/gameon-player/internal/services/account"
	"github.com/gameontext/gameon-player/internal/services/auth"
	"github.com/gameontext/gameon-player/internal/services/events"
	"github.com/gameontext/gameon-player/internal/services/names"
	"github.com/gameontext/gameon-player/internal/storage"
	"github.com/gameontext/gameon-player/internal/storage/memory"
	redisstorage "github.com/gameontext/gameon-player/internal/storage/redis"
	memorystream "github.com/gameontext/gameon-player/internal/stream/memory"
	redisstream "github.com/gameontext/gameon-player/internal/stream/redis"
)

// Ensure the stream publishers implement the interface
var (
	_ events.Publisher = (*memorystream.Publisher)(nil)
	_ events.Publisher = (*redisstream.Publisher)(nil)
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Events. Dispatcher is nil when events are disabled.
	Publisher  events.Publisher
	Dispatcher *events.Dispatcher

	// Services
	Policy         auth.Policy
	Verifier       *auth.Verifier
	AccountService *account.Service
	NameGenerator  *names.Generator

	closers []io.Closer
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
	// PublicKey verifies identity tokens (required)
	PublicKey *rsa.PublicKey
	// SystemID is the identity allowed to act on any player
	// If empty, defaults to auth.DefaultSystemID
	SystemID model.PlayerID
	// EventsType selects the event publisher ("none", "memory" or "redis")
	// If empty, defaults to "none"
	EventsType string
	// EventsRedisConfig holds stream settings (required if EventsType is "redis")
	EventsRedisConfig *redisstream.Config
	// Events holds dispatcher settings; zero fields take defaults
	Events events.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if cfg.PublicKey == nil {
		return nil, errors.New("PublicKey is required")
	}

	var closers []io.Closer

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageMemory
	}

	switch storageType {
	case config.StorageMemory:
		store = memory.New()
	case config.StorageRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect storage: %w", err)
		}
		store = redisStore
		closers = append(closers, redisStore)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create event publisher based on type
	var publisher events.Publisher
	eventsType := cfg.EventsType
	if eventsType == "" {
		eventsType = config.EventsNone
	}

	switch eventsType {
	case config.EventsNone:
	case config.EventsMemory:
		publisher = memorystream.New(memorystream.DefaultRetain)
	case config.EventsRedis:
		if cfg.EventsRedisConfig == nil {
			return nil, errors.New("EventsRedisConfig required when EventsType is redis")
		}
		streamPublisher, err := redisstream.New(*cfg.EventsRedisConfig)
		if err != nil {
			return nil, err
		}
		publisher = streamPublisher
		closers = append(closers, streamPublisher)
	default:
		return nil, errors.New("invalid EventsType: must be 'none', 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	app := newWithDependencies(store, publisher, cfg.PublicKey, cfg.SystemID, cfg.Events, clk, rnd, logger)
	app.closers = closers
	logger.Info("application created",
		slog.String("storage", storageType),
		slog.String("events", eventsType),
		slog.String("system_id", string(app.Policy.SystemID())))
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing).
// A nil publisher disables events.
func newWithDependencies(
	store storage.Storage,
	publisher events.Publisher,
	key *rsa.PublicKey,
	systemID model.PlayerID,
	eventsCfg events.Config,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *App {
	var dispatcher *events.Dispatcher
	var sink account.EventSink = events.Discard{}
	if publisher != nil {
		dispatcher = events.NewDispatcher(publisher, eventsCfg, logger)
		sink = dispatcher
	}

	policy := auth.NewPolicy(systemID)
	verifier := auth.NewVerifier(key, clk, logger)
	accountService := account.New(store, policy, sink, rnd, clk, logger)
	nameGenerator := names.New(rnd)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Publisher:      publisher,
		Dispatcher:     dispatcher,
		Policy:         policy,
		Verifier:       verifier,
		AccountService: accountService,
		NameGenerator:  nameGenerator,
	}
}

// Start launches background workers. It returns immediately.
func (a *App) Start(ctx context.Context) {
	if a.Dispatcher != nil {
		a.Dispatcher.Start(ctx)
	}
}

// Close stops background workers, letting queued events drain, and
// releases backend connections
func (a *App) Close(ctx context.Context) error {
	if a.Dispatcher != nil {
		a.Dispatcher.Stop(ctx)
	}

	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
