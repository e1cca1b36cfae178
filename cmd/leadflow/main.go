package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alexanderramin/leadflow/internal/app"
	"github.com/alexanderramin/leadflow/internal/cli"
	"github.com/alexanderramin/leadflow/internal/config"
	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/http/router"
	"github.com/alexanderramin/leadflow/internal/logger"
	"github.com/alexanderramin/leadflow/internal/service"
	"github.com/alexanderramin/leadflow/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()
	cfg := config.Load()

	serving := len(os.Args) > 1 && os.Args[1] == "serve"
	if !serving && cfg.LogLevel == "" {
		// Keep one-shot commands quiet unless asked otherwise.
		cfg.LogLevel = "warn"
	}

	// OTel must init before logger (logger uses OTel provider in production)
	tel, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing otel: %w", err)
	}
	defer func() {
		if tel == nil {
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}()

	logger.SetupWriter(cfg, os.Stderr)
	if tel != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	}

	store, err := db.OpenStore(ctx, cfg.Storage.DSN, cfg.Storage.Timeout)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	crm := app.NewFromStore(store, app.Options{
		Actor:    cfg.Actor,
		Logger:   slog.Default(),
		Observer: service.NewSlogUseCaseObserver(slog.Default()),
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a := &cli.App{
		CRM: crm,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
		DefaultAddr: ":" + cfg.Port,
		Serve: func(ctx context.Context, addr string) error {
			return serve(ctx, cfg, crm, addr)
		},
	}

	return cli.NewRootCmd(a).ExecuteContext(ctx)
}

// serve runs the HTTP API until ctx is cancelled, then drains connections.
func serve(ctx context.Context, cfg config.Config, crm app.CRM, addr string) error {
	server := &http.Server{
		Addr: addr,
		Handler: router.New(crm, router.RouterConfig{
			ServiceName: cfg.OTel.ServiceName,
			Tracing:     cfg.OTel.Enabled(),
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "http server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.InfoContext(ctx, "shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	slog.InfoContext(shutdownCtx, "shutdown complete")
	return nil
}
