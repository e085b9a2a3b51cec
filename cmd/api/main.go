package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/paper-graph-api/internal/config"
	"github.com/01moynul/paper-graph-api/internal/database"
	"github.com/01moynul/paper-graph-api/internal/handlers"
	"github.com/01moynul/paper-graph-api/internal/logger"
	"github.com/01moynul/paper-graph-api/internal/metrics"
	"github.com/01moynul/paper-graph-api/internal/routes"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	// 0. --- Load Environment Variables (.env) ---
	envErr := godotenv.Load()

	// 1. --- Configuration (read once, shared read-only) ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. --- Logger ---
	zlog, err := logger.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	if envErr != nil {
		zlog.Warn("Could not find or load .env file. Relying on system environment variables.")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. --- Database Connection Pool ---
	pool, err := database.OpenPool(context.Background(), cfg.Database, zlog)
	if err != nil {
		zlog.Error("Failed to configure database pool", zap.Error(err))
		return 1
	}
	defer pool.Close()

	// --- Application Setup ---
	collector := metrics.NewCollector("papergraph")
	app := &handlers.Handlers{
		Store:  database.NewStore(pool, collector),
		Logger: zlog,
	}

	router := routes.SetupRouter(app, routes.Options{
		AllowedOrigin: cfg.CORSAllowedOrigin,
		Metrics:       collector,
		Logger:        zlog,
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		zlog.Info("Starting paper graph API server", zap.String("addr", cfg.ServerAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		// Return through the defers so the pool is closed and logs are flushed.
		zlog.Error("Failed to start server", zap.Error(err))
		exitCode = 1
		return
	case <-stop:
	}

	zlog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("Server shutdown did not complete", zap.Error(err))
		exitCode = 1
	}
	return
}
