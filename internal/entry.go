// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/pymaster/internal/api"
	"github.com/starford/pymaster/internal/index"
	"github.com/starford/pymaster/internal/mcpserver"
	"github.com/starford/pymaster/internal/session"
	"github.com/starford/pymaster/internal/sse"
	"github.com/starford/pymaster/internal/web"
)

// sessionTTL is how long an idle browser session keeps its UI state.
const sessionTTL = 24 * time.Hour

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	c, err := app.build()
	if err != nil {
		return err
	}
	defer c.Close()
	logger := c.logger

	broker := sse.NewBroker(0)
	defer broker.Close()
	sessions := session.NewStore(sessionTTL)

	apiHandler := api.NewHandler(c.svc, c.tree, c.plan, sessions).WithBand(cfg.ScrollSpy.Band())
	apiRouter := api.NewRouter(apiHandler, sessions, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	pages := web.NewServer(c.svc, c.renderer, c.tree, c.plan, sessions, web.MustParseTemplates(), web.Options{
		SiteTitle: cfg.Site.Title,
		Band:      cfg.ScrollSpy.Band(),
		Events:    broker,
	}, logger.With(slog.String("component", "web")))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)
	r.Mount("/", pages.Routes())

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Event streams never go idle; closing the broker ends them.
	httpServer.RegisterOnShutdown(broker.Close)

	g, gCtx := errgroup.WithContext(ctx)

	if c.db != nil && cfg.Index.Watch {
		g.Go(func() error {
			err := index.Watch(gCtx, c.db, c.store, logger.With(slog.String("component", "index")), broker.PublishNoteEvent)
			if err != nil {
				logger.Error("watcher stopped", slog.String("error", err.Error()))
			}
			return nil
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
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

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
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group context so the watcher exits with the server.
var errShutdown = errors.New("shutdown")

// RunMCP serves the note tools over stdio until the client disconnects.
func RunMCP(_ context.Context, opts ...Option) error {
	app, err := newApplication(append([]Option{WithLogOutput(os.Stderr)}, opts...))
	if err != nil {
		return err
	}
	c, err := app.build()
	if err != nil {
		return err
	}
	defer c.Close()

	c.logger.Info("Starting MCP server on stdio")
	return mcpserver.New(c.svc, c.store, app.version).ServeStdio()
}

// RenderNote writes the rendered HTML of notePath to w.
func RenderNote(ctx context.Context, w io.Writer, notePath string, opts ...Option) error {
	app, err := newApplication(append([]Option{WithLogOutput(os.Stderr)}, opts...))
	if err != nil {
		return err
	}
	app.config.Index.Enabled = false
	c, err := app.build()
	if err != nil {
		return err
	}
	defer c.Close()

	page, err := c.svc.Page(ctx, notePath, "")
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, page.HTML)
	return err
}
