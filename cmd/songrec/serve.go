package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/songrec/internal/metrics"
	chiTransport "github.com/kailas-cloud/songrec/internal/transport/chi"
	ingestuc "github.com/kailas-cloud/songrec/internal/usecase/ingest"
	"github.com/kailas-cloud/songrec/internal/version"
)

// maxHeaderBytes bounds the request line and headers, which carry the query hints.
const maxHeaderBytes = 64 << 10

// catalogReloader reloads the catalog on SIGHUP.
type catalogReloader interface {
	Reload(ctx context.Context) (ingestuc.Stats, error)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the dataset and serve the HTTP API",
	Long: `serve downloads and parses the configured dataset, then serves
GET /, /songs, /recommendations, /health and /metrics.

SIGHUP reloads the dataset; a failed reload keeps the current catalog.
SIGINT and SIGTERM shut the server down gracefully.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	env, cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting songrec API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("dataset_url", cfg.Dataset.URL),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	// Register domain metrics explicitly (no init())
	metrics.RegisterCatalogMetrics()
	metrics.RegisterRecommendMetrics()

	a, err := newApp(ctx, &cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize", zap.Error(err))
		return err
	}
	defer a.Close()

	// The catalog must be populated before the server starts listening.
	if _, err := a.ingest.Load(ctx); err != nil {
		logger.Error("Initial catalog load failed", zap.Error(err))
		return fmt.Errorf("initial catalog load: %w", err)
	}

	server := chiTransport.NewServer(a.recommend, a.catalog, a.health, logger).
		WithLimits(cfg.Recommend.DefaultLimit, cfg.Recommend.MaxLimit)
	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		CORSMaxAge:        time.Duration(cfg.CORS.MaxAgeSec) * time.Second,
		RateLimitRequests: cfg.RateLimit.Requests,
		RateLimitWindow:   time.Duration(cfg.RateLimit.WindowSec) * time.Second,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
		MaxHeaderBytes:    maxHeaderBytes,
	}

	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	defer signal.Stop(reload)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	if err := waitForShutdown(ctx, a.ingest, reload, quit, serveErr, logger); err != nil {
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// waitForShutdown blocks until a shutdown signal, ctx cancellation or a server
// error. SIGHUP reloads run in the background; their context is cancelled and
// awaited before waitForShutdown returns.
func waitForShutdown(
	ctx context.Context,
	reloader catalogReloader,
	reload, quit <-chan os.Signal,
	serveErr <-chan error,
	logger *zap.Logger,
) error {
	runCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	for {
		select {
		case <-reload:
			logger.Info("Received SIGHUP, reloading catalog")
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := reloader.Reload(runCtx); err != nil {
					logger.Warn("Reload failed, keeping current catalog", zap.Error(err))
				}
			}()
		case err := <-serveErr:
			if err != nil {
				logger.Error("HTTP server error", zap.Error(err))
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		case <-quit:
			logger.Info("Received shutdown signal")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return nil
		}
	}
}
