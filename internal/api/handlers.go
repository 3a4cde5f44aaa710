package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/pymaster/internal/content"
	"github.com/starford/pymaster/internal/links"
	"github.com/starford/pymaster/internal/nav"
	"github.com/starford/pymaster/internal/noteservice"
	"github.com/starford/pymaster/internal/outline"
	"github.com/starford/pymaster/internal/progress"
	"github.com/starford/pymaster/internal/session"
)

// Handler holds API route handlers.
type Handler struct {
	svc      *noteservice.Service
	tree     []nav.Item
	plan     progress.Plan
	sessions *session.Store
	band     outline.Band
	now      func() time.Time
}

// NewHandler creates a Handler using the default scroll-spy band.
func NewHandler(svc *noteservice.Service, tree []nav.Item, plan progress.Plan, sessions *session.Store) *Handler {
	return &Handler{
		svc:      svc,
		tree:     tree,
		plan:     plan,
		sessions: sessions,
		band:     outline.DefaultBand(),
		now:      time.Now,
	}
}

// WithBand replaces the scroll-spy band.
func (h *Handler) WithBand(b outline.Band) *Handler {
	h.band = b
	return h
}

// notePath extracts the note path after the route prefix. Encoded slashes
// (notes%2F08-graphs) are accepted.
func notePath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return content.Normalize(raw)
	}
	return content.Normalize(decoded)
}

// ListNotes handles GET /api/notes.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.List(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		writeError(w, "list notes", err)
		return
	}
	writeJSON(w, http.StatusOK, NoteListResponse{Notes: rows, Total: len(rows)})
}

// GetNote handles GET /api/notes/*. It honours If-None-Match against the
// page ETag.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	path := notePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	page, err := h.svc.Page(r.Context(), path, r.URL.Query().Get("url"))
	if err != nil {
		writeError(w, "get note", err)
		return
	}
	w.Header().Set("ETag", page.ETag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == page.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetOutline handles GET /api/outline/*.
func (h *Handler) GetOutline(w http.ResponseWriter, r *http.Request) {
	path := notePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	hs, err := h.svc.Outline(r.Context(), path)
	if err != nil {
		writeError(w, "get outline", err)
		return
	}
	writeJSON(w, http.StatusOK, OutlineResponse{Path: path, Outline: hs})
}

// ActiveSection handles POST /api/outline/*. It feeds the observations to a
// fresh scroll-spy subscription over the note's outline and reports which
// entry ends up active.
func (h *Handler) ActiveSection(w http.ResponseWriter, r *http.Request) {
	path := notePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	var req SpyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	hs, err := h.svc.Outline(r.Context(), path)
	if err != nil {
		writeError(w, "active section", err)
		return
	}

	spy := outline.NewSpy(h.band)
	defer spy.Close()
	sub := spy.Watch(hs)
	for _, o := range req.Observations {
		sub.Observe(o)
	}
	if req.Selected != "" {
		sub.Select(req.Selected)
	}
	writeJSON(w, http.StatusOK, SpyResponse{Path: path, Active: sub.Current(), RootMargin: h.band.RootMargin()})
}

// Resolve handles GET /api/resolve?href=&from=.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	href := q.Get("href")
	if href == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'href' is required"))
		return
	}
	t := links.Resolve(href, content.Normalize(q.Get("from")))
	writeJSON(w, http.StatusOK, ResolveResponse{Target: t, NewTab: t.NewTab()})
}

// Search handles GET /api/search?q=&limit=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		writeError(w, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Backlinks handles GET /api/backlinks/*.
func (h *Handler) Backlinks(w http.ResponseWriter, r *http.Request) {
	path := notePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	bl, err := h.svc.Backlinks(r.Context(), path)
	if err != nil {
		writeError(w, "backlinks", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"path": path, "backlinks": bl})
}
