package api

import (
	"net/http"

	"github.com/starford/pymaster/internal/nav"
	"github.com/starford/pymaster/internal/progress"
	"github.com/starford/pymaster/internal/session"
)

// Nav handles GET /api/nav?path=. The rail is projected with the caller's
// session expansion state and path as the current location.
func (h *Handler) Nav(w http.ResponseWriter, r *http.Request) {
	current := r.URL.Query().Get("path")
	data := h.sessions.Load(session.IDFrom(r.Context()))
	writeJSON(w, http.StatusOK, h.navResponse(current, data.Nav))
}

// ToggleNav handles POST /api/nav/toggle.
func (h *Handler) ToggleNav(w http.ResponseWriter, r *http.Request) {
	var req NavToggleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	data := h.sessions.Update(session.IDFrom(r.Context()), func(d session.Data) session.Data {
		d.Nav = nav.Reduce(d.Nav, nav.Toggle(req.ID))
		return d
	})
	writeJSON(w, http.StatusOK, h.navResponse(r.URL.Query().Get("path"), data.Nav))
}

func (h *Handler) navResponse(current string, exp nav.Expanded) NavResponse {
	return NavResponse{
		Current:  current,
		Expanded: exp.IDs(),
		Items:    nav.Project(h.tree, exp, current),
	}
}

// Breadcrumbs handles GET /api/breadcrumbs?path=.
func (h *Handler) Breadcrumbs(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Query().Get("path")
	crumbs := nav.Breadcrumbs(p)
	if crumbs == nil {
		crumbs = []nav.Crumb{}
	}
	writeJSON(w, http.StatusOK, BreadcrumbsResponse{Path: p, Breadcrumbs: crumbs})
}

// Progress handles GET /api/progress.
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	data := h.sessions.Load(session.IDFrom(r.Context()))
	writeJSON(w, http.StatusOK, progress.Project(h.plan, data.Progress, h.now()))
}

// ToggleProblem handles POST /api/progress/toggle.
func (h *Handler) ToggleProblem(w http.ResponseWriter, r *http.Request) {
	var req ToggleProblemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p := progress.Problem{Week: *req.Week, Problem: *req.Problem}
	if !h.plan.Has(p.Week, p.Problem) {
		writeJSON(w, http.StatusNotFound, errorBody("no such problem"))
		return
	}
	now := h.now()
	data := h.sessions.Update(session.IDFrom(r.Context()), func(d session.Data) session.Data {
		d.Progress = progress.Reduce(d.Progress, progress.ToggleProblem(p, now))
		return d
	})
	writeJSON(w, http.StatusOK, progress.Project(h.plan, data.Progress, now))
}

// SetReflection handles PUT /api/progress/reflection.
func (h *Handler) SetReflection(w http.ResponseWriter, r *http.Request) {
	var req ReflectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	data := h.sessions.Update(session.IDFrom(r.Context()), func(d session.Data) session.Data {
		d.Progress = progress.Reduce(d.Progress, progress.SetReflection(req.Text))
		return d
	})
	writeJSON(w, http.StatusOK, progress.Project(h.plan, data.Progress, h.now()))
}
