// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/folio/internal/api"
	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/markdown"
	"github.com/starford/folio/internal/mcpserver"
	"github.com/starford/folio/internal/sse"
	"github.com/starford/folio/internal/view"
)

// Run starts the HTTP server with the given options and blocks until a
// shutdown signal arrives or ctx is cancelled.
func Run(ctx context.Context, opts ...Option) error {
	a, err := newApplication(os.Stdout, opts)
	if err != nil {
		return err
	}

	rt, err := a.build(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg := a.config
	logger := rt.logger
	slog.SetDefault(logger)

	broker := sse.NewBroker(sse.Options{
		ArchiveThrottle: 2 * time.Second,
		Heartbeat:       30 * time.Second,
	})
	defer broker.Close()

	views := view.New(rt.app, markdown.New())
	handler := api.NewHandler(rt.app, views)
	router := api.NewServerRouter(handler, api.Options{
		AuthEnabled: cfg.Auth.AuthEnabled(),
		Token:       cfg.Auth.Token,
		Events:      broker,
		SiteURL:     cfg.App.SiteURL,
	})

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Event streams never go idle on their own; end them when shutdown starts.
	httpServer.RegisterOnShutdown(broker.Close)

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Reload the vault on change, re-sync the index and notify SSE clients.
	if rt.watching() {
		g.Go(func() error {
			return content.Watch(gCtx, rt.vault, cfg.Content.VaultPath, rt.holder, logger, func(c *content.Catalog) {
				rt.reindex(gCtx, c)
				broker.PublishReload(sse.Reloaded{Version: c.Version(), Posts: c.Len()})
			})
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		waitForShutdown(gCtx, logger)

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the MCP tools over stdio. Logs go to stderr so they never
// mix with protocol messages.
func RunMCP(ctx context.Context, opts ...Option) error {
	a, err := newApplication(os.Stderr, opts)
	if err != nil {
		return err
	}

	rt, err := a.build(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	srv := mcpserver.New(rt.repo, markdown.New())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gCtx := errgroup.WithContext(ctx)

	if rt.watching() {
		g.Go(func() error {
			return content.Watch(gCtx, rt.vault, a.config.Content.VaultPath, rt.holder, rt.logger, func(c *content.Catalog) {
				rt.reindex(gCtx, c)
			})
		})
	}

	// ServeStdio returns on stdin EOF or SIGINT/SIGTERM; the watcher stops with it.
	g.Go(func() error {
		defer cancel()
		rt.logger.Info("MCP server starting on stdio")
		return srv.ServeStdio()
	})

	return g.Wait()
}

// RunQuery runs one query against the configured backend and writes the
// result as indented JSON.
func RunQuery(ctx context.Context, op, arg string, opts ...Option) error {
	a, err := newApplication(os.Stderr, opts)
	if err != nil {
		return err
	}

	rt, err := a.build(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := runQuery(ctx, rt.repo, op, arg)
	if err != nil {
		return err
	}
	return writeResult(a.out, result)
}

func waitForShutdown(ctx context.Context, logger *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("Context cancelled, initiating shutdown")
	}
}
