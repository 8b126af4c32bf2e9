// Package main is the entry point for the Sistema CMC API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/httpsniic/sistema-cmc-server/config"
	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/infra/db"
	"github.com/httpsniic/sistema-cmc-server/internal/infra/dependency"
	"github.com/httpsniic/sistema-cmc-server/internal/infra/scheduler"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/cache"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/controller"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/middleware"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/persistence/model"
)

const (
	sentEmailRetentionDays = 30
	purgeSchedule          = "30 3 * * *"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	slog.Info("Starting Sistema CMC API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
	)

	// Initialize database connection
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	if err := database.AutoMigrate(model.All()...); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	metricsCache, cacheHealth := connectCache(rootCtx, cfg)

	injector, err := dependency.NewInjector(cfg, database.DB(), dependency.Options{
		Cache:       metricsCache,
		CacheHealth: cacheHealth,
		DBHealth:    database.HealthCheck,
	})
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	if cfg.Email.WorkerEnabled {
		go injector.EmailWorker.Start(rootCtx)
	}

	jobs, err := startScheduler(cfg, injector)
	if err != nil {
		slog.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// Setup router
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.NewCORS(cfg.CORS.AllowedOrigins).Handler(engine),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if jobs != nil {
		jobs.Stop(ctx)
	}
	stop()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// connectCache returns the Redis metrics cache, or a no-op cache when Redis
// is disabled or unreachable.
func connectCache(ctx context.Context, cfg *config.Config) (adapter.MetricsCache, controller.HealthChecker) {
	if !cfg.Redis.Enabled {
		slog.Info("Metrics cache disabled")
		return cache.NoopMetricsCache{}, nil
	}

	client, err := cache.NewRedisClient(ctx, cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Warn("Redis unavailable, running without metrics cache", "error", err)
		return cache.NoopMetricsCache{}, func() bool { return false }
	}

	health := func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(pingCtx).Err() == nil
	}
	return cache.NewRedisMetricsCache(client, cfg.Metrics.CacheTTL), health
}

// startScheduler registers the cost alert and email purge jobs. It returns
// nil when alerts are disabled.
func startScheduler(cfg *config.Config, injector *dependency.Injector) (*scheduler.Scheduler, error) {
	if !cfg.Alerts.Enabled {
		slog.Info("Cost alerts disabled")
		return nil, nil
	}

	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		slog.Warn("Falling back to local time zone for scheduler", "error", err)
		loc = time.Local
	}

	jobs := scheduler.New(loc)
	if err := jobs.Add("cost_alerts", cfg.Alerts.Schedule, func(ctx context.Context) error {
		_, err := injector.CostAlerts.Execute(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	if err := jobs.Add("purge_sent_emails", purgeSchedule, func(ctx context.Context) error {
		injector.EmailWorker.PurgeSent(ctx, sentEmailRetentionDays)
		return nil
	}); err != nil {
		return nil, err
	}

	jobs.Start()
	return jobs, nil
}
