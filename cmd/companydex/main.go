package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/companydex/internal/config"
	"github.com/kailas-cloud/companydex/internal/db"
	dbElastic "github.com/kailas-cloud/companydex/internal/db/elastic"
	dbRedis "github.com/kailas-cloud/companydex/internal/db/redis"
	logpkg "github.com/kailas-cloud/companydex/internal/logger"
	"github.com/kailas-cloud/companydex/internal/metrics"
	companyrepo "github.com/kailas-cloud/companydex/internal/repository/company"
	chiTransport "github.com/kailas-cloud/companydex/internal/transport/chi"
	companyuc "github.com/kailas-cloud/companydex/internal/usecase/company"
	healthuc "github.com/kailas-cloud/companydex/internal/usecase/health"
	"github.com/kailas-cloud/companydex/internal/version"
)

const rateLimitSweepInterval = 5 * time.Minute

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting companydex API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := newStore(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register store metrics explicitly (no init())
	metrics.RegisterStoreMetrics()

	repo := companyrepo.NewInstrumented(companyrepo.New(store), cfg.Database.Driver, logger)
	if err := repo.EnsureIndex(ctx); err != nil {
		// Health reports the missing index; reads fail with a store error until it exists.
		logger.Error("Failed to ensure search index", zap.Error(err))
	}
	if !store.SupportsTextSearch(ctx) {
		logger.Warn("Backend has no full-text search; the search parameter will be rejected")
	}

	companySvc := companyuc.New(repo)
	healthSvc := healthuc.New(store, repo)

	server := chiTransport.NewServer(companySvc, healthSvc, logger)

	limiter := chiTransport.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sweepLimiter(sweepCtx, limiter, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(corsMiddleware(cfg.CORS))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(queryTimeout(time.Duration(cfg.Database.QueryTimeoutSec) * time.Second))
	r.Use(limiter.Middleware)
	r.Use(metrics.Middleware())
	server.Mount(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// newStore creates the document store for the configured driver.
func newStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Addrs,
			Username:  cfg.Username,
			Password:  cfg.Password,
			DB:        cfg.DB,
			KeyPrefix: cfg.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("redis store: %w", err)
		}
		return s, nil
	case config.DriverElasticsearch:
		s, err := dbElastic.NewStore(dbElastic.Config{
			Addresses:   cfg.Addrs,
			Username:    cfg.Username,
			Password:    cfg.Password,
			IndexPrefix: cfg.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("elasticsearch store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// sweepLimiter drops idle per-client limiters until ctx is cancelled.
func sweepLimiter(ctx context.Context, rl *chiTransport.RateLimiter, logger *zap.Logger) {
	ticker := time.NewTicker(rateLimitSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rl.Sweep(); n > 0 {
				logger.Debug("Swept idle rate limiters", zap.Int("removed", n))
			}
		}
	}
}
