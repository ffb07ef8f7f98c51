package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rijksuitgaven/roadmap/internal/api"
	"github.com/rijksuitgaven/roadmap/internal/config"
	"github.com/rijksuitgaven/roadmap/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load configuration", "error", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	labels, err := config.LoadTrackLabels(cfg.TracksFile)
	if err != nil {
		log.Error("invalid track labels", "error", err)
		os.Exit(1)
	}
	loader, err := cfg.Loader()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := pipeline.NewService(loader, pipeline.Options{
		CacheTTL:   cfg.CacheTTL,
		Labels:     labels,
		WatchFiles: cfg.WatchFiles(),
	}, log)
	if err := svc.Start(ctx); err != nil {
		log.Error("start pipeline", "error", err)
		os.Exit(1)
	}

	srv := api.NewServer(svc, cfg.APIKey, log)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		svc.Stop()
		if c, ok := loader.(interface{ Close() }); ok {
			c.Close()
		}
	}()

	log.Info("starting roadmap server", "port", cfg.Port, "watch", cfg.Watch)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
