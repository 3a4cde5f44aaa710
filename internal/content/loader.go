// Package content loads raw markdown for a note path by probing candidate
// file locations on a Source.
package content

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/starford/pymaster/internal/apperr"
)

// Source is a key to bytes lookup over the content root. Keys are slash
// separated paths relative to the root, extension included.
type Source interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// NotFoundError is returned when no candidate for a note path holds markdown.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "failed to load: " + e.Path
}

// Unwrap lets callers match with errors.Is(err, apperr.ErrNotFound).
func (e *NotFoundError) Unwrap() error { return apperr.ErrNotFound }

// Document is the markdown found for a note path.
type Document struct {
	NotePath string // normalized note path, no extension
	Key      string // candidate key that produced Body
	Body     []byte
}

// Loader resolves note paths to markdown. It keeps no state between calls;
// every Load reads from the Source again.
type Loader struct {
	src    Source
	logger *slog.Logger
}

// NewLoader creates a Loader reading from src.
func NewLoader(src Source, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{src: src, logger: logger}
}

// Candidates returns the keys probed for notePath, in order.
func Candidates(notePath string) []string {
	p := Normalize(notePath)
	return []string{p + ".md", p + "/README.md"}
}

// Normalize strips a leading slash and a trailing .md extension.
func Normalize(notePath string) string {
	return strings.TrimSuffix(strings.TrimPrefix(notePath, "/"), ".md")
}

// Load returns the markdown for notePath. A candidate that cannot be read, or
// whose payload is an HTML document, is skipped. When every candidate is
// skipped Load returns *NotFoundError naming notePath.
func (l *Loader) Load(ctx context.Context, notePath string) (*Document, error) {
	for _, key := range Candidates(notePath) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := l.src.Fetch(ctx, key)
		if err != nil {
			l.logger.Debug("content: candidate miss", slog.String("key", key), slog.String("error", err.Error()))
			continue
		}
		if isHTMLDocument(data) {
			l.logger.Debug("content: candidate is html fallback", slog.String("key", key))
			continue
		}
		return &Document{NotePath: Normalize(notePath), Key: key, Body: data}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.logger.Warn("content: note not found", slog.String("path", notePath))
	return nil, &NotFoundError{Path: notePath}
}

// LoadText is Load without the candidate bookkeeping.
func (l *Loader) LoadText(ctx context.Context, notePath string) (string, error) {
	doc, err := l.Load(ctx, notePath)
	if err != nil {
		return "", err
	}
	return string(doc.Body), nil
}

var doctype = []byte("<!doctype")

// isHTMLDocument reports whether data is an HTML page rather than markdown,
// which static servers return for unknown paths in SPA fallback mode.
func isHTMLDocument(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) < len(doctype) {
		return false
	}
	return bytes.EqualFold(trimmed[:len(doctype)], doctype)
}

// String implements fmt.Stringer for log output.
func (d *Document) String() string {
	return fmt.Sprintf("%s (%s, %d bytes)", d.NotePath, d.Key, len(d.Body))
}
