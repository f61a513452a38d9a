// Package app wires configuration into backends and services. It is shared
// by the HTTP server and the fitctl tool.
package app

import (
	"context"
	"fmt"
	"time"

	"alcyxob/fitlocal/internal/ai"
	"alcyxob/fitlocal/internal/api"
	"alcyxob/fitlocal/internal/cache"
	"alcyxob/fitlocal/internal/config"
	"alcyxob/fitlocal/internal/metrics"
	"alcyxob/fitlocal/internal/repository"
	"alcyxob/fitlocal/internal/repository/mongo"
	"alcyxob/fitlocal/internal/repository/sqlite"
	"alcyxob/fitlocal/internal/service"
	"alcyxob/fitlocal/internal/storage"

	log "github.com/sirupsen/logrus"
)

// Backend is an open storage backend.
type Backend struct {
	Repositories repository.Repositories
	// Migrate creates tables (sqlite) or indexes (mongo).
	Migrate func(ctx context.Context) error
	Close   func() error
}

// OpenBackend connects to the configured database driver.
func OpenBackend(cfg config.DatabaseConfig) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := sqlite.NewStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
		}
		return &Backend{
			Repositories: store.Repositories(),
			Migrate: func(context.Context) error {
				return store.Migrate()
			},
			Close: store.Close,
		}, nil

	case config.DriverMongo:
		client, err := mongo.ConnectDB(cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		db := client.Database(cfg.Name)
		return &Backend{
			Repositories: mongo.NewRepositories(db),
			Migrate: func(ctx context.Context) error {
				mongo.EnsureIndexes(ctx, db)
				return nil
			},
			Close: func() error {
				return mongo.DisconnectDB(client)
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// NewGenerator returns the Claude-backed generator, instrumented when a
// metrics manager is given.
func NewGenerator(cfg config.AIConfig, metricsManager *metrics.Manager) ai.Generator {
	if cfg.APIKey == "" {
		log.Warn("ai.api_key is empty, plan and review generation will fail")
	}
	generator := ai.NewClaudeGenerator(ai.ClaudeConfig{
		APIKey:    cfg.APIKey,
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
		Timeout:   cfg.Timeout,
	})
	return ai.WithMetrics(generator, metricsManager)
}

// NewFileStorage returns nil, without error, when archiving is not configured.
func NewFileStorage(ctx context.Context, cfg config.S3Config) (storage.FileStorage, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	fileStorage, err := storage.NewS3Storage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init s3 storage: %w", err)
	}
	return fileStorage, nil
}

// Dependencies are the collaborators the services are built from.
type Dependencies struct {
	Repositories repository.Repositories
	Generator    ai.Generator
	Cache        service.PerformanceCache
	FileStorage  storage.FileStorage
	Clock        service.Clock
}

// NewServices builds every service on deps. A nil cache gets a small
// in-process one and a nil clock reads the local wall clock.
func NewServices(deps Dependencies) api.Services {
	repos := deps.Repositories
	clock := deps.Clock
	if clock == nil {
		clock = service.SystemClock(time.Local)
	}
	performanceCache := deps.Cache
	if performanceCache == nil {
		performanceCache = cache.NewPerformanceCache(1)
	}

	profiles := service.NewProfileService(repos.Profiles)
	plans := service.NewPlanService(repos.Plans, repos.Profiles, repos.FitnessTests, deps.Generator, clock)
	sessions := service.NewSessionService(repos.Sessions, repos.Profiles, plans, performanceCache, clock)

	return api.Services{
		Profiles:  profiles,
		Dashboard: service.NewDashboardService(profiles, plans, sessions, clock),
		Plans:     plans,
		Sessions:  sessions,
		Reviews:   service.NewReviewService(repos.Reviews, repos.Sessions, repos.Profiles, deps.Generator, clock),
		Fitness:   service.NewFitnessService(repos.FitnessTests, clock),
		Export:    service.NewExportService(repos.Sessions, deps.FileStorage, clock),
	}
}
