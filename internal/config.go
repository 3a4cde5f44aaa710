package internal

import (
	"fmt"
	"log/slog"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/pymaster/internal/outline"
	"github.com/starford/pymaster/internal/render"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Content sources.
const (
	SourceFS   = "fs"
	SourceHTTP = "http"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Content   ContentConfig     `yaml:"content"`
	Index     IndexConfig       `yaml:"index"`
	Auth      AuthConfig        `yaml:"auth"`
	Site      SiteConfig        `yaml:"site"`
	Outline   OutlineConfig     `yaml:"outline"`
	ScrollSpy ScrollSpyConfig   `yaml:"scroll_spy"`
	Render    RenderConfig      `yaml:"render"`
	Progress  ProgressConfig    `yaml:"progress"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	sections := []struct {
		name string
		v    interface{ Validate() error }
	}{
		{"app", &c.App},
		{"content", &c.Content},
		{"index", &c.Index},
		{"auth", &c.Auth},
		{"site", &c.Site},
		{"outline", &c.Outline},
		{"scroll_spy", &c.ScrollSpy},
		{"render", &c.Render},
	}
	for _, s := range sections {
		if err := s.v.Validate(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	if c.Index.Enabled && c.Content.Root == "" {
		return fmt.Errorf("index: enabled but content.root is empty")
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig says where note markdown comes from.
//
// Source "fs" reads Root directly; "http" fetches from BaseURL, as when the
// notes are published on a static file server. Root is still required for
// the index, which always walks the local tree.
type ContentConfig struct {
	Source  string `yaml:"source"`
	Root    string `yaml:"root"`
	BaseURL string `yaml:"base_url"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	if c.Source == "" {
		c.Source = SourceFS
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Source, validation.In(SourceFS, SourceHTTP)),
		validation.Field(&c.Root, validation.When(c.Source == SourceFS, validation.Required)),
		validation.Field(&c.BaseURL, validation.When(c.Source == SourceHTTP, validation.Required, validation.Match(httpURL))),
	)
}

var httpURL = regexp.MustCompile(`^https?://[^\s/]+`)

// IndexConfig controls the SQLite search index.
type IndexConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Watch   bool   `yaml:"watch"`
}

// Validate validates the index configuration.
func (c *IndexConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.When(c.Enabled, validation.Required)),
	)
}

// AuthConfig holds authentication configuration for the JSON API.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// SiteConfig holds presentation settings. NavFile, when set, replaces the
// built-in navigation tree.
type SiteConfig struct {
	Title   string `yaml:"title"`
	NavFile string `yaml:"nav_file"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Title, validation.Required, validation.Length(1, 80)),
	)
}

// OutlineConfig selects which headings make up a note's table of contents.
type OutlineConfig struct {
	Level   int      `yaml:"level"`
	Exclude []string `yaml:"exclude"`
}

// Validate validates the outline configuration.
func (c *OutlineConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.Required, validation.Min(1), validation.Max(6)),
	)
}

// Builder returns the outline builder for this configuration.
func (c *OutlineConfig) Builder() *outline.Builder {
	return &outline.Builder{Level: c.Level, Exclude: c.Exclude}
}

// ScrollSpyConfig is the viewport band in which a section counts as active.
type ScrollSpyConfig struct {
	TopInsetPx     float64 `yaml:"top_inset_px"`
	BottomFraction float64 `yaml:"bottom_fraction"`
}

// Validate validates the scroll-spy configuration.
func (c *ScrollSpyConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TopInsetPx, validation.Min(0.0)),
		validation.Field(&c.BottomFraction, validation.Min(0.0), validation.Max(0.99)),
	)
}

// Band converts the configuration to an outline band.
func (c *ScrollSpyConfig) Band() outline.Band {
	return outline.Band{TopInset: c.TopInsetPx, BottomFraction: c.BottomFraction}
}

// RenderConfig holds markdown rendering settings.
type RenderConfig struct {
	HighlightStyle string `yaml:"highlight_style"`
	LineNumbers    bool   `yaml:"line_numbers"`
}

// Validate validates the render configuration.
func (c *RenderConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.HighlightStyle, validation.Required),
	)
}

// Options converts the configuration to renderer options.
func (c *RenderConfig) Options() render.Options {
	return render.Options{HighlightStyle: c.HighlightStyle, LineNumbers: c.LineNumbers}
}

// ProgressConfig points at an optional YAML study plan.
type ProgressConfig struct {
	PlanFile string `yaml:"plan_file"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	band := outline.DefaultBand()
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Content: ContentConfig{
			Source: SourceFS,
			Root:   "./materials",
		},
		Index: IndexConfig{
			Enabled: true,
			Path:    "./pymaster.db",
			Watch:   true,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Site: SiteConfig{
			Title: "PyMaster",
		},
		Outline: OutlineConfig{
			Level:   2,
			Exclude: append([]string(nil), outline.DefaultExclude...),
		},
		ScrollSpy: ScrollSpyConfig{
			TopInsetPx:     band.TopInset,
			BottomFraction: band.BottomFraction,
		},
		Render: RenderConfig{
			HighlightStyle: render.DefaultStyle,
		},
	}
}
