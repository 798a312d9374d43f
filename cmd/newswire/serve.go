package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"newswire/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the background cache refresher",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Root context cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		logger.Printf("failed to load config: %v", err)
		return err
	}

	d, err := buildDeps(ctx, cfg, logger)
	if err != nil {
		logger.Printf("failed to init dependencies: %v", err)
		return err
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.NewRouter(d.catalog, logger),
	}
	go func() {
		logger.Printf("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("HTTP server error: %v", err)
			stop()
		}
	}()

	if cfg.RefreshInterval > 0 {
		go d.catalog.StartRefreshing(ctx, cfg.RefreshInterval)
	}

	logger.Println("service started")

	<-ctx.Done()
	logger.Println("shutdown signal received, shutting down...")

	shutdownCtx, cancel := shutdownContext()
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Printf("HTTP server shutdown error: %v", err)
	}
	d.close(shutdownCtx)

	logger.Println("shutdown complete")
	return nil
}

// commandContext returns cmd's context, or Background when the command was
// invoked without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
