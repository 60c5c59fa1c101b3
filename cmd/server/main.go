package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gameontext/gameon-player/internal/api"
	"github.com/gameontext/gameon-player/internal/config"
	"github.com/gameontext/gameon-player/internal/factory"
	"github.com/gameontext/gameon-player/internal/model"
	"github.com/gameontext/gameon-player/internal/services/auth"
	"github.com/gameontext/gameon-player/internal/services/events"
	redisstorage "github.com/gameontext/gameon-player/internal/storage/redis"
	redisstream "github.com/gameontext/gameon-player/internal/stream/redis"
)

func main() {
	// Set up logging with JSON output
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if l, err := config.ParseLevel(cfg.LogLevel); err == nil {
		level.Set(l)
	}

	// Load the token verification key
	publicKey, err := auth.LoadPublicKey(cfg.JWTKeyFile)
	if err != nil {
		logger.Error("failed to load token key", slog.String("path", cfg.JWTKeyFile), slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build factory config
	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
		PublicKey:   publicKey,
		SystemID:    model.PlayerID(cfg.SystemID),
		EventsType:  cfg.EventsType,
		Events: events.Config{
			Topic:          cfg.EventsTopic,
			ShutdownGrace:  cfg.EventsShutdownGrace,
			ConnectTimeout: cfg.EventsConnectTimeout,
		},
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == config.StorageRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.PoolSize = cfg.RedisPoolSize
		redisCfg.KeyPrefix = cfg.RedisPrefix
		factoryCfg.RedisConfig = &redisCfg
	}
	if cfg.EventsType == config.EventsRedis {
		factoryCfg.EventsRedisConfig = &redisstream.Config{
			URL:    cfg.EventsURL(),
			MaxLen: cfg.EventsMaxLen,
		}
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Connect the event publisher in the background
	app.Start(context.Background())

	// Create API router
	routerCfg := api.RouterConfig{
		Logger:         logger,
		Verifier:       app.Verifier,
		AccountService: app.AccountService,
		NameGenerator:  app.NameGenerator,
		Health:         app.Storage,
	}
	if app.Dispatcher != nil {
		routerCfg.Events = app.Dispatcher
	}
	router := api.NewRouter(routerCfg)

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	logger.Info("server starting",
		slog.String("storage", cfg.StorageType),
		slog.String("events", cfg.EventsType))

	// Serve until SIGINT or SIGTERM
	exitCode := 0
	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		exitCode = 1
	}

	// Drain queued events and close backends
	if err := app.Close(context.Background()); err != nil {
		logger.Error("failed to close application", slog.String("error", err.Error()))
		exitCode = 1
	}

	logger.Info("server stopped")
	cancel()
	os.Exit(exitCode)
}
