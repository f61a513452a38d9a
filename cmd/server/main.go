package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/fitlocal/internal/api"
	"alcyxob/fitlocal/internal/app"
	"alcyxob/fitlocal/internal/cache"
	"alcyxob/fitlocal/internal/config"
	"alcyxob/fitlocal/internal/logging"
	"alcyxob/fitlocal/internal/metrics"
	"alcyxob/fitlocal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
)

// @title FitLocal API
// @version 1.0
// @description Single-user training planner: AI-generated plans, workout logging, streaks and reviews.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	// --- Logging ---
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.Log.File,
		LogToStdout:      cfg.Log.Stdout,
		LogLevel:         cfg.Log.Level,
		LogFormatJSON:    cfg.Log.JSON,
		Environment:      cfg.Log.Environment,
		SentryEnabled:    cfg.Log.SentryDSN != "",
		SentryDSN:        cfg.Log.SentryDSN,
		SentryServerName: "fitlocal-server",
	})
	log.Infof("Starting FitLocal server (database driver: %s)", cfg.Database.Driver)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Metrics ---
	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("fitlocal", "main", promRegistry)

	// --- Database ---
	backend, err := app.OpenBackend(cfg.Database)
	if err != nil {
		log.Fatalf("FATAL: Could not open database: %v", err)
	}
	defer func() {
		log.Println("Closing database...")
		if err := backend.Close(); err != nil {
			log.Errorf("Failed to close database: %v", err)
		}
	}()

	migrateCtx, migrateCancel := context.WithTimeout(ctx, time.Minute)
	if err := backend.Migrate(migrateCtx); err != nil {
		migrateCancel()
		log.Fatalf("FATAL: Could not migrate database: %v", err)
	}
	migrateCancel()
	log.Println("Database ready.")

	// --- Export archive storage (optional) ---
	fileStorage, err := app.NewFileStorage(ctx, cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}
	if fileStorage == nil {
		log.Println("S3 bucket not configured, export archiving disabled.")
	}

	// --- Rate limiting of the generator endpoints (optional) ---
	var rateLimiter api.RequestRateLimiter
	if cfg.Redis.Address != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       0, // use default DB
		})
		defer rdb.Close()

		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
		rateLimiter = redis_rate.NewLimiter(rdb)
	} else {
		log.Println("Redis not configured, generation endpoints are not rate limited.")
	}

	// --- Services ---
	services := app.NewServices(app.Dependencies{
		Repositories: backend.Repositories,
		Generator:    app.NewGenerator(cfg.AI, metricsManager),
		Cache:        cache.NewPerformanceCache(cfg.Cache.SizeMB),
		FileStorage:  fileStorage,
		Clock:        service.SystemClock(cfg.App.Location()),
	})

	// --- Gin Engine and Routes ---
	if cfg.Log.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	api.SetupRoutes(router, services, metricsManager, promRegistry, api.RateLimitSettings{
		Limiter:           rateLimiter,
		GeneratePerMinute: cfg.RateLimit.GeneratePerMinute,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// The server has 5 seconds to finish the requests it is currently handling
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
