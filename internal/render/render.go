// Package render turns note markdown into HTML: GFM, chroma highlighted code
// blocks, heading anchors and application-aware links.
package render

import (
	"bytes"
	"fmt"
	"io"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"

	"github.com/starford/pymaster/internal/models"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github-dark"

// Options configures a Renderer.
type Options struct {
	HighlightStyle string
	LineNumbers    bool
}

// Result is a rendered note.
type Result struct {
	HTML     string
	Title    string           // text of the first level-1 heading
	Headings []models.Heading // every heading, in document order
}

// Renderer converts markdown to HTML. It holds no per-call state and can be
// shared between goroutines.
type Renderer struct {
	md    goldmark.Markdown
	style string
}

// New builds a Renderer.
func New(opts Options) *Renderer {
	style := opts.HighlightStyle
	if style == "" {
		style = DefaultStyle
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
					chromahtml.WithLineNumbers(opts.LineNumbers),
				),
				highlighting.WithWrapperRenderer(codeBlockWrapper),
			),
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(&noteTransformer{}, 100),
			),
		),
	)
	return &Renderer{md: md, style: style}
}

// Render converts source, resolving relative links against notePath.
func (r *Renderer) Render(source []byte, notePath string) (*Result, error) {
	pc := parser.NewContext()
	pc.Set(notePathKey, notePath)

	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf, parser.WithContext(pc)); err != nil {
		return nil, fmt.Errorf("render: convert %s: %w", notePath, err)
	}

	res := &Result{HTML: buf.String(), Headings: []models.Heading{}}
	if hs, ok := pc.Get(headingsKey).([]models.Heading); ok {
		res.Headings = hs
	}
	for _, h := range res.Headings {
		if h.Level == 1 {
			res.Title = h.Text
			break
		}
	}
	return res, nil
}

// CSS writes the stylesheet for the configured highlight style.
func (r *Renderer) CSS(w io.Writer) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	return formatter.WriteCSS(w, styles.Get(r.style))
}

// Style returns the chroma style name in use.
func (r *Renderer) Style() string { return r.style }

// codeBlockWrapper puts fenced code in a labelled container. When chroma did
// not highlight the block the wrapper also opens and closes the pre element.
func codeBlockWrapper(w util.BufWriter, c highlighting.CodeBlockContext, entering bool) {
	lang, hasLang := c.Language()
	if entering {
		_, _ = w.WriteString(`<div class="code-block">`)
		if hasLang && len(lang) > 0 {
			_, _ = w.WriteString(`<div class="code-block-lang">`)
			_, _ = w.Write(util.EscapeHTML(lang))
			_, _ = w.WriteString(`</div>`)
		}
		if !c.Highlighted() {
			_, _ = w.WriteString("<pre><code")
			if hasLang && len(lang) > 0 {
				_, _ = w.WriteString(` class="language-`)
				_, _ = w.Write(util.EscapeHTML(lang))
				_ = w.WriteByte('"')
			}
			_ = w.WriteByte('>')
		}
		return
	}
	if !c.Highlighted() {
		_, _ = w.WriteString("</code></pre>")
	}
	_, _ = w.WriteString("</div>\n")
}
