package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/pymaster/internal/content"
	"github.com/starford/pymaster/internal/index"
	"github.com/starford/pymaster/internal/nav"
	"github.com/starford/pymaster/internal/noteservice"
	"github.com/starford/pymaster/internal/progress"
	"github.com/starford/pymaster/internal/render"
	"github.com/starford/pymaster/internal/storage"
)

// components is everything the commands share. store and db may be nil.
type components struct {
	logger   *slog.Logger
	store    storage.Provider
	db       *index.DB
	renderer *render.Renderer
	svc      *noteservice.Service
	tree     []nav.Item
	plan     progress.Plan
}

func (c *components) Close() {
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			c.logger.Warn("index close failed", slog.String("error", err.Error()))
		}
	}
}

func newApplication(opts []Option) (*application, error) {
	app := &application{version: "dev", logOutput: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

// build assembles the shared components. The index is opened and synced
// once; watching is left to the caller.
func (a *application) build() (*components, error) {
	cfg := a.config

	logger := slog.New(slog.NewJSONHandler(a.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("content_source", cfg.Content.Source),
		slog.String("content_root", cfg.Content.Root),
		slog.Bool("index_enabled", cfg.Index.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	c := &components{logger: logger}

	if cfg.Content.Root != "" {
		store, err := storage.NewFS(cfg.Content.Root)
		switch {
		case err == nil:
			c.store = store
		case errors.Is(err, os.ErrNotExist) && cfg.Content.Source == SourceHTTP:
			logger.Warn("content root missing, local listing disabled", slog.String("root", cfg.Content.Root))
		default:
			return nil, fmt.Errorf("init storage: %w", err)
		}
	}

	var src content.Source
	switch cfg.Content.Source {
	case SourceHTTP:
		hs, err := content.NewHTTPSource(cfg.Content.BaseURL, a.httpClient)
		if err != nil {
			return nil, fmt.Errorf("init content source: %w", err)
		}
		src = hs
	default:
		if c.store == nil {
			return nil, fmt.Errorf("init content source: content.root is required")
		}
		src = content.NewFSSource(c.store)
	}

	var idx index.NoteIndex
	if cfg.Index.Enabled && c.store != nil {
		db, err := index.Open(cfg.Index.Path)
		if err != nil {
			return nil, fmt.Errorf("init index: %w", err)
		}
		c.db = db
		idx = db
		if err := index.Sync(db, c.store, logger); err != nil {
			logger.Warn("initial sync failed", slog.String("error", err.Error()))
		}
	}

	tree, err := nav.LoadTree(cfg.Site.NavFile)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.tree = tree

	plan, err := progress.LoadPlan(cfg.Progress.PlanFile)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.plan = plan

	c.renderer = render.New(cfg.Render.Options())
	c.svc = noteservice.NewService(
		content.NewLoader(src, logger.With(slog.String("component", "content"))),
		c.renderer,
		cfg.Outline.Builder(),
		idx,
		logger.With(slog.String("component", "notes")),
	)
	return c, nil
}
