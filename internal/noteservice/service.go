// Package noteservice assembles note pages from the content loader, the
// renderer, the outline builder and, when enabled, the index.
package noteservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/pymaster/internal/apperr"
	"github.com/starford/pymaster/internal/checksum"
	"github.com/starford/pymaster/internal/content"
	"github.com/starford/pymaster/internal/index"
	"github.com/starford/pymaster/internal/models"
	"github.com/starford/pymaster/internal/nav"
	"github.com/starford/pymaster/internal/outline"
	"github.com/starford/pymaster/internal/parser"
	"github.com/starford/pymaster/internal/render"
	"github.com/starford/pymaster/internal/routes"
)

// Page is a fully rendered note.
type Page struct {
	Path        string           `json:"path"`
	URL         string           `json:"url"`
	Source      string           `json:"source"`
	Title       string           `json:"title"`
	Tags        []string         `json:"tags"`
	Markdown    string           `json:"markdown"`
	HTML        string           `json:"html"`
	ETag        string           `json:"etag"`
	Outline     []models.Heading `json:"outline"`
	Backlinks   []string         `json:"backlinks"`
	Breadcrumbs []nav.Crumb      `json:"breadcrumbs"`
}

// Service builds pages. db may be nil, in which case search and backlinks
// are unavailable.
type Service struct {
	loader   *content.Loader
	renderer *render.Renderer
	outline  *outline.Builder
	db       index.NoteIndex
	logger   *slog.Logger
}

// NewService creates a Service.
func NewService(loader *content.Loader, renderer *render.Renderer, builder *outline.Builder, db index.NoteIndex, logger *slog.Logger) *Service {
	if builder == nil {
		builder = outline.NewBuilder()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{loader: loader, renderer: renderer, outline: builder, db: db, logger: logger}
}

// IndexEnabled reports whether an index is attached.
func (s *Service) IndexEnabled() bool { return s.db != nil }

// Page loads and renders notePath. urlPath drives the breadcrumb trail; when
// empty the canonical URL of the note is used.
func (s *Service) Page(ctx context.Context, notePath, urlPath string) (*Page, error) {
	doc, err := s.loader.Load(ctx, notePath)
	if err != nil {
		return nil, err
	}
	// Relative links resolve against the requested note path, so a
	// directory README opened as notes/arrays links next to notes/arrays.
	notePath = doc.NotePath
	parsed, err := parser.Parse(doc.Body, notePath)
	if err != nil {
		return nil, fmt.Errorf("noteservice: parse %s: %w", notePath, err)
	}
	body := []byte(parsed.Body)

	res, err := s.renderer.Render(body, notePath)
	if err != nil {
		return nil, fmt.Errorf("noteservice: render %s: %w", notePath, err)
	}

	title := parsed.Title
	if title == "" {
		title = res.Title
	}
	if urlPath == "" {
		urlPath = routes.URL(notePath)
	}

	page := &Page{
		Path:        notePath,
		URL:         routes.URL(notePath),
		Source:      doc.Key,
		Title:       title,
		Tags:        nonNilSlice(parsed.Tags),
		Markdown:    string(doc.Body),
		HTML:        res.HTML,
		ETag:        checksum.ETag(doc.Body),
		Outline:     s.outline.Build(body),
		Backlinks:   []string{},
		Breadcrumbs: nonNilSlice(nav.Breadcrumbs(urlPath)),
	}

	if s.db != nil {
		bl, err := s.db.Backlinks(notePath)
		if err != nil {
			s.logger.Warn("noteservice: backlinks failed",
				slog.String("path", notePath), slog.String("error", err.Error()))
		} else {
			page.Backlinks = nonNilSlice(bl)
		}
	}
	return page, nil
}

// Outline returns the outline of notePath without rendering it.
func (s *Service) Outline(ctx context.Context, notePath string) ([]models.Heading, error) {
	doc, err := s.loader.Load(ctx, notePath)
	if err != nil {
		return nil, err
	}
	parsed, err := parser.Parse(doc.Body, doc.NotePath)
	if err != nil {
		return nil, err
	}
	return s.outline.Build([]byte(parsed.Body)), nil
}

// Markdown returns the raw markdown of notePath.
func (s *Service) Markdown(ctx context.Context, notePath string) (string, error) {
	return s.loader.LoadText(ctx, notePath)
}

// Search runs a full-text query against the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	if s.db == nil {
		return nil, apperr.ErrIndexDisabled
	}
	return s.db.Search(query, limit)
}

// List returns indexed notes under prefix.
func (s *Service) List(_ context.Context, prefix string) ([]index.NoteRow, error) {
	if s.db == nil {
		return nil, apperr.ErrIndexDisabled
	}
	return s.db.ListNotes(prefix)
}

// Backlinks returns the notes linking to notePath.
func (s *Service) Backlinks(_ context.Context, notePath string) ([]string, error) {
	if s.db == nil {
		return nil, apperr.ErrIndexDisabled
	}
	bl, err := s.db.Backlinks(content.Normalize(notePath))
	return nonNilSlice(bl), err
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
