package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/starford/pymaster/internal/outline"
)

const note = "# Arrays & Strings\n\n" +
	"## **Two Pointers** 🚀 Technique\n\n" +
	"See [complexity](./02-complexity.md), [graphs](../notes/08-graphs), " +
	"[docs](https://docs.python.org/3/) and [below](#sliding-window).\n\n" +
	"> Remember the invariant.\n\n" +
	"## Sliding Window\n\n" +
	"```python\ndef f(xs):\n    return len(xs)\n```\n\n" +
	"<script>alert(1)</script>\n"

func renderNote(t *testing.T) *Result {
	t.Helper()
	res, err := New(Options{}).Render([]byte(note), "notes/03-arrays-strings")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return res
}

func TestRender_HeadingIDs(t *testing.T) {
	res := renderNote(t)
	for _, want := range []string{
		`id="arrays-strings"`,
		`id="two-pointers-technique"`,
		`class="markdown-h2"`,
		`id="sliding-window"`,
	} {
		if !strings.Contains(res.HTML, want) {
			t.Errorf("html missing %s\n%s", want, res.HTML)
		}
	}
	if res.Title != "Arrays & Strings" {
		t.Errorf("Title = %q", res.Title)
	}
	if len(res.Headings) != 3 {
		t.Errorf("Headings = %+v", res.Headings)
	}
}

func TestRender_OutlineIDsMatchRenderedIDs(t *testing.T) {
	res := renderNote(t)
	for _, h := range outline.Extract([]byte(note)) {
		if !strings.Contains(res.HTML, `id="`+h.ID+`"`) {
			t.Errorf("outline id %q not present in rendered html", h.ID)
		}
	}
}

func TestRender_Links(t *testing.T) {
	res := renderNote(t)
	for _, want := range []string{
		`href="/notes/02-complexity"`,
		`data-route="/notes/02-complexity"`,
		`href="/notes/08-graphs"`,
		`href="https://docs.python.org/3/"`,
		`target="_blank"`,
		`rel="noopener noreferrer"`,
		`href="#sliding-window"`,
		`class="markdown-link"`,
	} {
		if !strings.Contains(res.HTML, want) {
			t.Errorf("html missing %s\n%s", want, res.HTML)
		}
	}
	if strings.Count(res.HTML, `target="_blank"`) != 1 {
		t.Errorf("only the external link opens a new tab:\n%s", res.HTML)
	}
}

func TestRender_ProtocolRelativeLinkIsExternal(t *testing.T) {
	res, err := New(Options{}).Render([]byte("[cdn](//cdn.example.com/x)\n"), "notes/overview")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`href="//cdn.example.com/x"`, `target="_blank"`, `rel="noopener noreferrer"`} {
		if !strings.Contains(res.HTML, want) {
			t.Errorf("html missing %s\n%s", want, res.HTML)
		}
	}
	if strings.Contains(res.HTML, "data-route") {
		t.Errorf("protocol-relative link treated as a route:\n%s", res.HTML)
	}
}

func TestRender_CodeAndQuote(t *testing.T) {
	res := renderNote(t)
	for _, want := range []string{
		`<div class="code-block">`,
		`<div class="code-block-lang">python</div>`,
		`class="chroma"`,
		`class="markdown-blockquote"`,
	} {
		if !strings.Contains(res.HTML, want) {
			t.Errorf("html missing %s\n%s", want, res.HTML)
		}
	}
}

func TestRender_RawHTMLEscaped(t *testing.T) {
	res := renderNote(t)
	if strings.Contains(res.HTML, "<script>") {
		t.Errorf("raw html must not pass through:\n%s", res.HTML)
	}
}

func TestRender_GFMTable(t *testing.T) {
	src := "| op | cost |\n|----|------|\n| get | O(1) |\n"
	res, err := New(Options{}).Render([]byte(src), "notes/02-complexity")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.HTML, "<table>") {
		t.Errorf("expected table:\n%s", res.HTML)
	}
}

func TestRenderer_CSS(t *testing.T) {
	r := New(Options{HighlightStyle: "monokai"})
	var buf bytes.Buffer
	if err := r.CSS(&buf); err != nil {
		t.Fatalf("CSS: %v", err)
	}
	if !strings.Contains(buf.String(), ".chroma") {
		t.Errorf("css missing .chroma selector")
	}
	if r.Style() != "monokai" {
		t.Errorf("Style = %q", r.Style())
	}
	if New(Options{}).Style() != DefaultStyle {
		t.Error("empty style should fall back to default")
	}
}
