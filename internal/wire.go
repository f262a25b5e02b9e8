package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/starford/folio/internal/app"
	"github.com/starford/folio/internal/auth"
	"github.com/starford/folio/internal/client"
	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/index"
	"github.com/starford/folio/internal/logger"
	"github.com/starford/folio/internal/query"
	"github.com/starford/folio/internal/storage"
)

// ErrUnknownBackend is returned for a query backend the runtime cannot build.
var ErrUnknownBackend = errors.New("unknown query backend")

// runtime holds the components shared by every command.
type runtime struct {
	cfg    *Config
	logger *slog.Logger
	loc    *time.Location

	// holder and vault are nil for the http backend; vault is also nil for
	// the built-in seed.
	holder *content.Holder
	vault  storage.Provider

	// mirror is set for the sqlite backend only.
	mirror index.Mirror

	repo query.Repository
	app  *app.Context

	closers []io.Closer
}

// build wires logger, content, backend and app context from the config.
func (a *application) build(ctx context.Context) (_ *runtime, err error) {
	cfg := a.config
	rt := &runtime{cfg: cfg}
	defer func() {
		if err != nil {
			rt.Close()
		}
	}()

	log, closer, err := logger.New(a.logOut, cfg.App.LoggerOptions())
	if err != nil {
		return nil, err
	}
	rt.logger = log
	rt.closers = append(rt.closers, closer)

	if rt.loc, err = cfg.Content.Location(); err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	log.Info("Configuration loaded",
		slog.String("content_source", cfg.Content.Source),
		slog.String("query_backend", cfg.Query.Backend),
		slog.String("latency", cfg.Query.Latency),
		slog.String("timezone", rt.loc.String()),
		slog.String("log_level", cfg.App.LogLevel))

	authSvc, err := rt.tokenService()
	if err != nil {
		return nil, err
	}

	var backend query.Repository
	switch cfg.Query.Backend {
	case BackendMemory, BackendSQLite:
		if err := rt.loadContent(); err != nil {
			return nil, err
		}
		backend = query.NewMemory(rt.holder, rt.loc)
		if cfg.Query.Backend == BackendSQLite {
			if backend, err = rt.openIndex(ctx); err != nil {
				return nil, err
			}
		}
	case BackendHTTP:
		backend = client.New(cfg.API.BaseURL, authSvc,
			client.WithTimeout(cfg.API.Timeout),
			client.WithLogger(log),
			client.WithUnauthorizedHook(func(path string) {
				if rt.app != nil {
					rt.app.Unauthorized(path)
				}
			}),
		)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Query.Backend)
	}

	latency, err := query.LatencyProfile(cfg.Query.Latency)
	if err != nil {
		return nil, err
	}
	rt.repo = query.NewDelayed(backend, latency, query.Sleep)

	rt.app, err = app.New(rt.repo, authSvc, log)
	if err != nil {
		return nil, fmt.Errorf("init app: %w", err)
	}
	return rt, nil
}

// tokenService keeps the client token in SessionPath when set, in memory
// otherwise.
func (rt *runtime) tokenService() (*auth.Service, error) {
	path := rt.cfg.Auth.SessionPath
	if path == "" {
		return auth.NewService(auth.NewMemoryStore()), nil
	}
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	files, err := storage.NewFS(path)
	if err != nil {
		return nil, fmt.Errorf("init session storage: %w", err)
	}
	rt.closers = append(rt.closers, files)
	return auth.NewService(auth.NewFileStore(files)), nil
}

func (rt *runtime) loadContent() error {
	cfg := rt.cfg.Content
	if cfg.Source == SourceSeed {
		c, err := content.Seed()
		if err != nil {
			return fmt.Errorf("load seed: %w", err)
		}
		rt.holder = content.NewHolder(c)
		return nil
	}

	if err := os.MkdirAll(cfg.VaultPath, 0o755); err != nil {
		return fmt.Errorf("create vault dir: %w", err)
	}
	store, err := storage.NewFS(cfg.VaultPath)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	rt.closers = append(rt.closers, store)
	c, err := content.LoadVault(store)
	if err != nil {
		return fmt.Errorf("load vault: %w", err)
	}
	rt.vault = store
	rt.holder = content.NewHolder(c)
	rt.logger.Info("vault loaded",
		slog.String("path", cfg.VaultPath),
		slog.Int("posts", c.Len()),
		slog.String("version", c.Version()))
	return nil
}

func (rt *runtime) openIndex(ctx context.Context) (query.Repository, error) {
	db, err := index.Open(rt.cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}
	rt.mirror = db
	rt.closers = append(rt.closers, db)

	changed, err := db.Sync(ctx, rt.holder.Catalog())
	if err != nil {
		return nil, fmt.Errorf("initial sync: %w", err)
	}
	rt.logger.Info("index synced",
		slog.String("path", rt.cfg.SQLite.Path),
		slog.Bool("changed", changed))
	return index.NewRepo(db, rt.loc), nil
}

// watching reports whether vault changes should be picked up live.
func (rt *runtime) watching() bool {
	return rt.vault != nil && rt.cfg.Content.Watch
}

// reindex pushes a freshly loaded catalog into the SQLite mirror, if any.
func (rt *runtime) reindex(ctx context.Context, c *content.Catalog) {
	if rt.mirror == nil {
		return
	}
	if _, err := rt.mirror.Sync(ctx, c); err != nil {
		rt.logger.Error("index sync failed",
			slog.String("version", c.Version()),
			slog.String("error", err.Error()))
	}
}

// Close releases the index, the storage roots and the log file.
func (rt *runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
