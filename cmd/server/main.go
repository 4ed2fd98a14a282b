// Command server runs the launchlist landing page and subscription API.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkraev/launchlist/internal/app"
	"github.com/mkraev/launchlist/internal/config"
	"github.com/mkraev/launchlist/internal/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	slog.Info("starting launchlist",
		"version", version.Version,
		"commit", version.GitCommit,
		"build_date", version.BuildDate,
	)

	cfg, err := config.Load(os.Getenv("LAUNCHLIST_CONFIG"))
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Run()
	}()

	select {
	case <-ctx.Done():
		slog.Info("received shutdown signal")
	case err := <-errCh:
		if err != nil {
			slog.Error("server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
