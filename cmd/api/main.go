package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ewilliams-labs/enisai/internal/adapters/audio"
	"github.com/ewilliams-labs/enisai/internal/adapters/rest"
	"github.com/ewilliams-labs/enisai/internal/adapters/sqlite"
	"github.com/ewilliams-labs/enisai/internal/adapters/storage"
	"github.com/ewilliams-labs/enisai/internal/adapters/tags"
	"github.com/ewilliams-labs/enisai/internal/config"
	"github.com/ewilliams-labs/enisai/internal/core/services"
	"github.com/ewilliams-labs/enisai/internal/worker"
)

func main() {
	// 1. Configuration (.env, then TOML file, then environment)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("FATAL: failed to read .env: %v", err)
	}
	cfg, err := config.Load(os.Getenv("ENISAI_CONFIG"))
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("FATAL: failed to build logger: %v", err)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("main: exiting", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

// run owns every resource so deferred cleanup happens before the process exits.
func run(cfg config.Config, logger *zap.Logger) error {
	// 2. Initialize "Driven" Adapters
	dbAdapter, err := sqlite.NewAdapter(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbAdapter.Close()

	uploads, err := storage.NewLocal(cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	pool := worker.NewPool(dbAdapter, cfg.QueueSize, logger)
	pool.Start(cfg.Workers)
	defer pool.Stop()

	// 3. Core service
	svc := services.NewAnalyzer(
		audio.NewExtractor(logger),
		uploads,
		tags.NewReader(),
		dbAdapter,
		pool,
		logger,
		services.Options{KeepUploads: cfg.KeepUploads},
	)

	// 4. Initialize "Driving" Adapter
	handler := rest.NewHandler(svc, logger, rest.Options{
		MaxUploadBytes: cfg.MaxUploadBytes(),
		RateLimit:      cfg.RateLimit,
		RateBurst:      cfg.RateBurst,
	})

	// 5. Start the Server
	logger.Info("main: enisai is listening",
		zap.String("addr", cfg.Addr),
		zap.String("upload_dir", uploads.Dir()),
		zap.String("db_path", cfg.DBPath),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("main: shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
	}
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	return zc.Build()
}
