package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"fundboard/internal/config"
	"fundboard/internal/dataset"
	apphttp "fundboard/internal/http"
	"fundboard/internal/log"
	"fundboard/internal/logos"
	"fundboard/internal/services"
)

func main() {
	// Load .env file if present (for local development)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the dataset cache up front so a malformed file fails the
	// start instead of the first request.
	store := dataset.NewStore(cfg.DatasetPath, logger)
	if _, err := store.Rounds(ctx); err != nil {
		logger.Error("Initial dataset load failed",
			log.FieldError, err,
			log.FieldDatasetPath, cfg.DatasetPath)
		os.Exit(1)
	}

	summaries := services.NewSummaryService(store, logger)
	logoResolver := logos.NewResolver(cfg.LogoDir)
	if cfg.LogoExt != "" {
		logoResolver.Ext = cfg.LogoExt
	}

	srv := apphttp.NewServer(":"+cfg.Port, summaries, summaries, logoResolver, apphttp.Options{
		SummaryCacheSize: cfg.SummaryCacheSize,
		SummaryCacheTTL:  cfg.SummaryCacheTTL,
	})

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting fundboard server",
			"port", cfg.Port,
			log.FieldDatasetPath, cfg.DatasetPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
