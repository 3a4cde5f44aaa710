package render

import (
	"bytes"
	"strconv"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/starford/pymaster/internal/anchor"
	"github.com/starford/pymaster/internal/links"
	"github.com/starford/pymaster/internal/models"
)

var (
	notePathKey = parser.NewContextKey()
	headingsKey = parser.NewContextKey()
)

// noteTransformer walks the parsed document once, giving headings their anchor
// ids and pointing links at application routes.
type noteTransformer struct{}

func (t *noteTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	notePath, _ := pc.Get(notePathKey).(string)
	src := reader.Source()
	var headings []models.Heading

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			raw := headingSource(node, src)
			id := anchor.ID(raw)
			node.SetAttributeString("id", []byte(id))
			node.SetAttributeString("class", []byte("markdown-h"+strconv.Itoa(node.Level)))
			headings = append(headings, models.Heading{ID: id, Text: anchor.Text(raw), Level: node.Level})
		case *ast.Link:
			rewriteLink(node, notePath)
		case *ast.AutoLink:
			if node.AutoLinkType == ast.AutoLinkURL {
				markExternal(node)
			}
		case *ast.Blockquote:
			node.SetAttributeString("class", []byte("markdown-blockquote"))
		}
		return ast.WalkContinue, nil
	})

	pc.Set(headingsKey, headings)
}

// headingSource returns the heading's markdown exactly as written, inline
// markup included, so ids match those computed from raw lines.
func headingSource(h *ast.Heading, src []byte) string {
	var buf bytes.Buffer
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		if i > 0 {
			buf.WriteByte(' ')
		}
		seg := lines.At(i)
		buf.Write(bytes.TrimSpace(seg.Value(src)))
	}
	return buf.String()
}

func rewriteLink(l *ast.Link, notePath string) {
	target := links.Resolve(string(l.Destination), notePath)
	l.SetAttributeString("class", []byte("markdown-link"))
	switch target.Kind {
	case links.KindExternal:
		markExternal(l)
	case links.KindInternal:
		l.Destination = []byte(target.Route)
		l.SetAttributeString("data-route", []byte(target.Route))
	}
}

func markExternal(n ast.Node) {
	n.SetAttributeString("target", []byte("_blank"))
	n.SetAttributeString("rel", []byte("noopener noreferrer"))
}
