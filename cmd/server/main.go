package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"campus/internal/app"
	"campus/internal/platform/config"
	"campus/internal/platform/httpserver"
	"campus/internal/platform/logger"
)

const shutdownTimeout = 10 * time.Second

// main loads configuration, wires the application, and runs the HTTP server
// and the audit worker until a termination signal arrives.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, log, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	srv := httpserver.New(cfg.Addr, application.Router, cfg.RequestTimeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return application.AuditWorker.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting campus records API", "addr", cfg.Addr, "seeded", cfg.SeedData)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
