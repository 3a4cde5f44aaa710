package web

import (
	"html/template"

	"github.com/starford/pymaster/internal/nav"
	"github.com/starford/pymaster/internal/noteservice"
	"github.com/starford/pymaster/internal/progress"
)

// ViewData is what every page template sees.
type ViewData struct {
	SiteTitle       string
	Title           string
	ContentTemplate string
	ContentHTML     template.HTML
	CurrentPath     string
	Nav             []nav.Node
	Crumbs          []nav.Crumb
	RootMargin      string
	EventsURL       string

	Page     *noteservice.Page
	PageHTML template.HTML
	Progress progress.View
	Error    *ErrorView
}

// ErrorView is the body of the content error page.
type ErrorView struct {
	Heading string
	Message string
	Hint    string
}
