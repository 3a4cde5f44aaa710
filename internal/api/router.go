package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/pymaster/internal/session"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events behind the same auth.
func NewRouter(h *Handler, sessions *session.Store, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Notes.
	r.Get("/notes", h.ListNotes)
	r.Get("/notes/*", h.GetNote)
	r.Get("/outline/*", h.GetOutline)
	r.Post("/outline/*", h.ActiveSection)
	r.Get("/backlinks/*", h.Backlinks)
	r.Get("/resolve", h.Resolve)
	r.Get("/search", h.Search)
	r.Get("/breadcrumbs", h.Breadcrumbs)

	// Per-session UI state.
	r.Group(func(r chi.Router) {
		r.Use(sessions.Middleware)
		r.Get("/nav", h.Nav)
		r.Post("/nav/toggle", h.ToggleNav)
		r.Get("/progress", h.Progress)
		r.Post("/progress/toggle", h.ToggleProblem)
		r.Put("/progress/reflection", h.SetReflection)
	})

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
