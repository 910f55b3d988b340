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

	"github.com/starford/raido/internal/content"
	"github.com/starford/raido/internal/mcpserver"
	"github.com/starford/raido/internal/search"
	"github.com/starford/raido/internal/server"
	"github.com/starford/raido/internal/site"
	"github.com/starford/raido/internal/sse"
	"github.com/starford/raido/internal/storage"
	"github.com/starford/raido/internal/watcher"
)

// bootstrap opens storage and search, builds the initial site snapshot,
// and returns the service plus a rebuild closure that refreshes it.
func bootstrap(ctx context.Context, cfg *Config, logger *slog.Logger) (*storage.FS, *search.DB, *server.Service, func(context.Context) error, error) {
	if err := os.MkdirAll(cfg.Site.Path, 0o755); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("create site dir: %w", err)
	}

	store, err := storage.NewFS(cfg.Site.Path)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("init storage: %w", err)
	}

	db, err := search.Open(cfg.Search.Path)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("init search: %w", err)
	}

	tree, err := content.Load(ctx, store, logger)
	if err != nil {
		db.Close()
		return nil, nil, nil, nil, fmt.Errorf("load site tree: %w", err)
	}
	index, err := site.Build(ctx, tree.Root())
	if err != nil {
		db.Close()
		return nil, nil, nil, nil, fmt.Errorf("build index: %w", err)
	}

	svc := server.NewService(store, db, tree, index)

	if err := search.SyncTree(db, tree, logger); err != nil {
		logger.Warn("initial search sync failed", slog.String("error", err.Error()))
	}

	rebuild := func(ctx context.Context) error {
		tree, err := content.Load(ctx, store, logger)
		if err != nil {
			return fmt.Errorf("load site tree: %w", err)
		}
		index, err := site.Build(ctx, tree.Root())
		if err != nil {
			return fmt.Errorf("build index: %w", err)
		}
		svc.Swap(tree, index)
		if err := search.SyncTree(db, tree, logger); err != nil {
			logger.Warn("search sync failed", slog.String("error", err.Error()))
		}
		logger.Info("site snapshot rebuilt", slog.Int("pages", index.Len()))
		return nil
	}

	return store, db, svc, rebuild, nil
}

// newLogger builds the structured JSON logger and installs it as default.
func newLogger(cfg *Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := newLogger(cfg)
	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("site_path", cfg.Site.Path),
		slog.String("search_path", cfg.Search.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, db, svc, rebuild, err := bootstrap(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	r := server.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the site sources and rebuild the snapshot on change.
	g.Go(func() error {
		return watcher.Watch(gCtx, store.Root(), cfg.Site.WatchDebounce, logger, rebuild,
			func(kind, path string) {
				broker.PublishPageEvent(kind, path)
			})
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

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

// RunMCP starts the MCP stdio server with the given options.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := newLogger(cfg)

	store, db, svc, rebuild, err := bootstrap(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	srv := mcpserver.New(svc, store, mcpserver.RebuildFunc(rebuild))
	logger.Info("MCP server starting on stdio", slog.String("site_path", cfg.Site.Path))
	return srv.ServeStdio()
}
