package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/champguess/internal/api"
	"github.com/mcoot/champguess/internal/catalog"
	"github.com/mcoot/champguess/internal/config"
	"github.com/mcoot/champguess/internal/factory"
	"github.com/mcoot/champguess/internal/preference"
	"github.com/mcoot/champguess/internal/services/game"
	redisstorage "github.com/mcoot/champguess/internal/storage/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	ddragon := catalog.DefaultConfig()
	ddragon.BaseURL = cfg.DataDragonURL
	ddragon.Version = cfg.DataDragonVersion

	cdragon := catalog.DefaultBuildConfig()
	cdragon.BaseURL = cfg.CommunityDragonURL
	cdragon.Patch = cfg.CommunityDragonPatch

	factoryCfg := factory.Config{
		Logger:          logger,
		StorageType:     cfg.StorageType,
		CatalogSource:   cfg.CatalogSource,
		DataDragon:      ddragon,
		CommunityDragon: cdragon,
		AliasesPath:     cfg.AliasesPath,
		MessagesPath:    cfg.MessagesPath,
		Preferences: preference.Config{
			Capacity: cfg.PreferenceCapacity,
			TTL:      cfg.PreferenceTTL,
		},
		Sweeper: game.SweeperConfig{
			Interval:         cfg.SweepInterval,
			SessionMaxAge:    cfg.SessionMaxAge,
			InactiveUserDays: cfg.InactiveUserDays,
		},
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.SessionTTL = 2 * cfg.SessionMaxAge
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		GameController:  app.GameController,
		PreferenceStore: app.Preferences,
		HubManager:      app.HubManager,
		ChampionService: app.Champions,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Sweep stale sessions and inactive users in the background
	go app.Sweeper.Run(ctx)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			cancel()
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		app.HubManager.CloseAll()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
