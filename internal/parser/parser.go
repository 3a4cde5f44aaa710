// Package parser extracts frontmatter, title, tags and outgoing note links from
// markdown for indexing.
package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/starford/pymaster/internal/anchor"
	"github.com/starford/pymaster/internal/links"
)

// Result holds the output of parsing a markdown file.
type Result struct {
	Frontmatter map[string]any
	Body        string
	Links       []string // note paths, no leading slash, no fragment
	Tags        []string
	Title       string
}

var md = goldmark.New()

// Parse splits frontmatter from body and collects metadata. notePath is the
// note the data belongs to and anchors relative links.
func Parse(data []byte, notePath string) (*Result, error) {
	fm, body := splitFrontmatter(data)
	doc := md.Parser().Parse(text.NewReader([]byte(body)))

	return &Result{
		Frontmatter: fm,
		Body:        body,
		Links:       extractLinks(doc, notePath),
		Tags:        extractTags(fm),
		Title:       deriveTitle(fm, doc, []byte(body)),
	}, nil
}

// splitFrontmatter separates YAML frontmatter (between leading --- lines) from
// the body. Missing or invalid frontmatter leaves the whole input as body.
func splitFrontmatter(data []byte) (map[string]any, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")
	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}
	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data)
	}
	block := rest[:idx]
	body := strings.TrimLeft(string(rest[idx+1+len(delim):]), "\n\r")

	var fm map[string]any
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return nil, string(data)
	}
	return fm, body
}

// extractLinks returns the deduplicated note paths that internal links in doc
// point at.
func extractLinks(doc ast.Node, notePath string) []string {
	seen := make(map[string]struct{})
	var out []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		l, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		target := links.Resolve(string(l.Destination), notePath)
		if target.Kind != links.KindInternal {
			return ast.WalkContinue, nil
		}
		p := target.Route
		if i := strings.IndexByte(p, '#'); i >= 0 {
			p = p[:i]
		}
		p = strings.TrimPrefix(p, "/")
		if p == "" {
			return ast.WalkContinue, nil
		}
		if _, dup := seen[p]; !dup {
			seen[p] = struct{}{}
			out = append(out, p)
		}
		return ast.WalkContinue, nil
	})
	return out
}

// extractTags collects the frontmatter "tags" list.
func extractTags(fm map[string]any) []string {
	raw, ok := fm["tags"].([]any)
	if !ok {
		return nil
	}
	seen := make(map[string]struct{}, len(raw))
	var out []string
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// deriveTitle returns the frontmatter "title" if present, otherwise the first
// level-1 heading, otherwise "".
func deriveTitle(fm map[string]any, doc ast.Node, src []byte) string {
	if s, ok := fm["title"].(string); ok && s != "" {
		return s
	}
	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !entering || !ok || h.Level != 1 {
			return ast.WalkContinue, nil
		}
		lines := h.Lines()
		var buf bytes.Buffer
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		title = anchor.Text(buf.String())
		return ast.WalkStop, nil
	})
	return title
}
