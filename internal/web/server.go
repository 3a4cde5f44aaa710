// Package web serves the study wiki as server-rendered HTML pages.
package web

import (
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/pymaster/internal/content"
	"github.com/starford/pymaster/internal/nav"
	"github.com/starford/pymaster/internal/noteservice"
	"github.com/starford/pymaster/internal/outline"
	"github.com/starford/pymaster/internal/progress"
	"github.com/starford/pymaster/internal/render"
	"github.com/starford/pymaster/internal/routes"
	"github.com/starford/pymaster/internal/session"
)

// Options configures the page server.
type Options struct {
	SiteTitle string
	Band      outline.Band
	// Events, when set, is mounted at /events and pages subscribe to it for
	// live reload.
	Events http.Handler
}

// Server renders pages.
type Server struct {
	svc      *noteservice.Service
	renderer *render.Renderer
	tree     []nav.Item
	plan     progress.Plan
	sessions *session.Store
	tmpl     *Templates
	opts     Options
	logger   *slog.Logger
	now      func() time.Time
}

// NewServer creates a Server.
func NewServer(svc *noteservice.Service, renderer *render.Renderer, tree []nav.Item, plan progress.Plan,
	sessions *session.Store, tmpl *Templates, opts Options, logger *slog.Logger,
) *Server {
	if opts.SiteTitle == "" {
		opts.SiteTitle = "PyMaster"
	}
	if opts.Band == (outline.Band{}) {
		opts.Band = outline.DefaultBand()
	}
	return &Server{
		svc:      svc,
		renderer: renderer,
		tree:     tree,
		plan:     plan,
		sessions: sessions,
		tmpl:     tmpl,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

// Routes returns the page router. Mount it last; it owns every path the API
// does not.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	static, _ := fs.Sub(staticFS, "static")
	r.Get("/static/highlight.css", s.highlightCSS)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	if s.opts.Events != nil {
		r.Get("/events", s.opts.Events.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(s.sessions.Middleware)
		r.Post("/nav/toggle", s.toggleNav)
		r.Post("/progress/toggle", s.toggleProblem)
		r.Post("/progress/reflection", s.setReflection)
		r.Get("/*", s.page)
	})
	return r
}

func (s *Server) highlightCSS(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if err := s.renderer.CSS(w); err != nil {
		s.logger.Error("web: highlight css failed", slog.String("error", err.Error()))
	}
}

// page dispatches every GET through the routing table.
func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	m := routes.Resolve(r.URL.Path)
	switch m.Kind {
	case routes.KindRedirect:
		http.Redirect(w, r, m.Location, http.StatusFound)
	case routes.KindProgress:
		s.progressPage(w, r)
	default:
		s.notePage(w, r, m.NotePath)
	}
}

func (s *Server) base(r *http.Request, title, tmpl string) ViewData {
	data := s.sessions.Load(session.IDFrom(r.Context()))
	return ViewData{
		SiteTitle:       s.opts.SiteTitle,
		Title:           title,
		ContentTemplate: tmpl,
		CurrentPath:     r.URL.Path,
		Nav:             nav.Project(s.tree, data.Nav, r.URL.Path),
		Crumbs:          nav.Breadcrumbs(r.URL.Path),
		RootMargin:      s.opts.Band.RootMargin(),
		EventsURL:       s.eventsURL(),
	}
}

func (s *Server) eventsURL() string {
	if s.opts.Events == nil {
		return ""
	}
	return "/events"
}

func (s *Server) notePage(w http.ResponseWriter, r *http.Request, notePath string) {
	page, err := s.svc.Page(r.Context(), notePath, r.URL.Path)
	if err != nil {
		s.contentError(w, r, notePath, err)
		return
	}
	v := s.base(r, page.Title, "note")
	v.Page = page
	v.PageHTML = template.HTML(page.HTML)
	w.Header().Set("ETag", page.ETag)
	s.tmpl.RenderPage(w, http.StatusOK, v)
}

func (s *Server) contentError(w http.ResponseWriter, r *http.Request, notePath string, err error) {
	if r.Context().Err() != nil {
		return
	}
	status := http.StatusInternalServerError
	ev := &ErrorView{Heading: "Content not found", Message: "Failed to load content"}

	var nf *content.NotFoundError
	if errors.As(err, &nf) {
		status = http.StatusNotFound
		ev.Message = "Failed to load: " + nf.Path
		ev.Hint = content.Candidates(nf.Path)[0]
	} else {
		s.logger.Error("web: render note failed",
			slog.String("path", notePath), slog.String("error", err.Error()))
	}

	v := s.base(r, ev.Heading, "error")
	v.Error = ev
	s.tmpl.RenderPage(w, status, v)
}

func (s *Server) progressPage(w http.ResponseWriter, r *http.Request) {
	data := s.sessions.Load(session.IDFrom(r.Context()))
	v := s.base(r, "Progress Tracker", "progress")
	v.Progress = progress.Project(s.plan, data.Progress, s.now())
	s.tmpl.RenderPage(w, http.StatusOK, v)
}

// returnPath reads the form's return target, accepting only local paths.
func returnPath(r *http.Request, fallback string) string {
	p := r.PostFormValue("return")
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, `\`) {
		return fallback
	}
	return p
}

func (s *Server) toggleNav(w http.ResponseWriter, r *http.Request) {
	id := r.PostFormValue("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}
	s.sessions.Update(session.IDFrom(r.Context()), func(d session.Data) session.Data {
		d.Nav = nav.Reduce(d.Nav, nav.Toggle(id))
		return d
	})
	http.Redirect(w, r, returnPath(r, routes.Overview), http.StatusSeeOther)
}

func (s *Server) toggleProblem(w http.ResponseWriter, r *http.Request) {
	week, err1 := strconv.Atoi(r.PostFormValue("week"))
	prob, err2 := strconv.Atoi(r.PostFormValue("problem"))
	if err1 != nil || err2 != nil || !s.plan.Has(week, prob) {
		http.Error(w, "no such problem", http.StatusBadRequest)
		return
	}
	now := s.now()
	s.sessions.Update(session.IDFrom(r.Context()), func(d session.Data) session.Data {
		d.Progress = progress.Reduce(d.Progress, progress.ToggleProblem(progress.Problem{Week: week, Problem: prob}, now))
		return d
	})
	http.Redirect(w, r, "/progress", http.StatusSeeOther)
}

func (s *Server) setReflection(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	text := r.PostFormValue("reflection")
	s.sessions.Update(session.IDFrom(r.Context()), func(d session.Data) session.Data {
		d.Progress = progress.Reduce(d.Progress, progress.SetReflection(text))
		return d
	})
	http.Redirect(w, r, "/progress", http.StatusSeeOther)
}
