package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/pymaster/internal/index"
	"github.com/starford/pymaster/internal/links"
	"github.com/starford/pymaster/internal/models"
	"github.com/starford/pymaster/internal/nav"
	"github.com/starford/pymaster/internal/noteservice"
	"github.com/starford/pymaster/internal/outline"
)

// NotePage is the page payload (aliased from the domain layer).
type NotePage = noteservice.Page

// NoteListResponse wraps indexed note listings.
type NoteListResponse struct {
	Notes []index.NoteRow `json:"notes"`
	Total int             `json:"total"`
}

// SearchResponse wraps search hits.
type SearchResponse struct {
	Results []index.SearchResult `json:"results"`
}

// OutlineResponse is the outline of one note.
type OutlineResponse struct {
	Path    string           `json:"path"`
	Outline []models.Heading `json:"outline"`
}

// ResolveResponse describes where a link goes.
type ResolveResponse struct {
	links.Target
	NewTab bool `json:"new_tab"`
}

// NavResponse is the projected navigation rail.
type NavResponse struct {
	Current  string     `json:"current"`
	Expanded []string   `json:"expanded"`
	Items    []nav.Node `json:"items"`
}

// BreadcrumbsResponse is the crumb trail of a URL path.
type BreadcrumbsResponse struct {
	Path        string      `json:"path"`
	Breadcrumbs []nav.Crumb `json:"breadcrumbs"`
}

// NavToggleRequest flips one rail section.
type NavToggleRequest struct {
	ID string `json:"id"`
}

// Validate implements validation.Validatable.
func (r NavToggleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
	)
}

// ToggleProblemRequest ticks or unticks one checklist entry. Indexes are
// zero based.
type ToggleProblemRequest struct {
	Week    *int `json:"week"`
	Problem *int `json:"problem"`
}

// Validate implements validation.Validatable.
func (r ToggleProblemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Week, validation.NotNil, validation.Min(0)),
		validation.Field(&r.Problem, validation.NotNil, validation.Min(0)),
	)
}

// ReflectionRequest replaces the weekly reflection.
type ReflectionRequest struct {
	Text string `json:"text"`
}

// Validate implements validation.Validatable.
func (r ReflectionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Length(0, 10000)),
	)
}

// SpyRequest replays viewport observations against a note's outline.
// Selected, when set, is applied after the observations as an outline click.
type SpyRequest struct {
	Observations []outline.Observation `json:"observations"`
	Selected     string                `json:"selected"`
}

// Validate implements validation.Validatable.
func (r SpyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Observations, validation.Length(0, 1000)),
	)
}

// SpyResponse names the active outline entry.
type SpyResponse struct {
	Path       string `json:"path"`
	Active     string `json:"active"`
	RootMargin string `json:"root_margin"`
}
