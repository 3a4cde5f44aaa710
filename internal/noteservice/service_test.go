package noteservice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/starford/pymaster/internal/apperr"
	"github.com/starford/pymaster/internal/content"
	"github.com/starford/pymaster/internal/index"
	"github.com/starford/pymaster/internal/render"
	"github.com/starford/pymaster/internal/storage"
	"github.com/starford/pymaster/internal/testutil"
)

var files = map[string]string{
	"notes/overview.md":         "---\ntitle: Study Overview\ntags: [start]\n---\n# Overview\n\nBegin with [basics](./01-python-basics.md).\n\n## Table of Contents\n\n## Plan\n",
	"notes/01-python-basics.md": "# Python Basics\n\n## Why This Matters\n\n## Lists\n\n### Slicing\n\n## Dicts\n",
	"problems/README.md":        "# Problems\n\n- [Two Sum](./two-sum)\n",
	"notes/arrays/README.md":    "# Arrays\n\n[next](./02-complexity) and [up](../templates/x)\n",
}

func newService(t *testing.T, withIndex bool) *Service {
	t.Helper()
	_, store := testutil.ContentRoot(t, files)
	return build(t, store, withIndex)
}

func build(t *testing.T, store storage.Provider, withIndex bool) *Service {
	t.Helper()
	logger := testutil.Logger()
	loader := content.NewLoader(content.NewFSSource(store), logger)
	var idx index.NoteIndex
	if withIndex {
		db := testutil.TestDB(t)
		if err := index.Sync(db, store, logger); err != nil {
			t.Fatal(err)
		}
		idx = db
	}
	return NewService(loader, render.New(render.Options{}), nil, idx, logger)
}

func TestPage(t *testing.T) {
	svc := newService(t, true)
	p, err := svc.Page(context.Background(), "notes/01-python-basics", "")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if p.Title != "Python Basics" {
		t.Errorf("title = %q", p.Title)
	}
	if p.Source != "notes/01-python-basics.md" || p.URL != "/notes/01-python-basics" {
		t.Errorf("source/url = %q %q", p.Source, p.URL)
	}
	if len(p.Outline) != 2 || p.Outline[0].ID != "lists" || p.Outline[1].ID != "dicts" {
		t.Errorf("outline = %+v", p.Outline)
	}
	if !strings.Contains(p.HTML, `id="slicing"`) {
		t.Errorf("html missing heading id: %s", p.HTML)
	}
	if len(p.Backlinks) != 1 || p.Backlinks[0] != "notes/overview" {
		t.Errorf("backlinks = %v", p.Backlinks)
	}
	if len(p.Breadcrumbs) != 2 || p.Breadcrumbs[1].Label != "01 python basics" {
		t.Errorf("breadcrumbs = %+v", p.Breadcrumbs)
	}
	if !strings.HasPrefix(p.ETag, `"`) {
		t.Errorf("etag = %q", p.ETag)
	}
}

func TestPage_FrontmatterStripped(t *testing.T) {
	svc := newService(t, false)
	p, err := svc.Page(context.Background(), "notes/overview", "/notes/overview")
	if err != nil {
		t.Fatal(err)
	}
	if p.Title != "Study Overview" {
		t.Errorf("title = %q", p.Title)
	}
	if strings.Contains(p.HTML, "tags:") {
		t.Errorf("frontmatter leaked into html: %s", p.HTML)
	}
	if len(p.Outline) != 1 || p.Outline[0].Text != "Plan" {
		t.Errorf("outline = %+v", p.Outline)
	}
	if len(p.Breadcrumbs) != 1 || p.Breadcrumbs[0].Label != "overview" {
		t.Errorf("breadcrumbs = %+v", p.Breadcrumbs)
	}
	if len(p.Tags) != 1 || p.Tags[0] != "start" {
		t.Errorf("tags = %v", p.Tags)
	}
}

func TestPage_ReadmeCandidate(t *testing.T) {
	svc := newService(t, false)
	p, err := svc.Page(context.Background(), "problems/README", "")
	if err != nil {
		t.Fatal(err)
	}
	if p.Source != "problems/README.md" || p.Path != "problems/README" || p.URL != "/problems" {
		t.Errorf("source/path/url = %q %q %q", p.Source, p.Path, p.URL)
	}
	if !strings.Contains(p.HTML, `href="/problems/two-sum"`) {
		t.Errorf("relative link not resolved: %s", p.HTML)
	}
}

func TestPage_DirectoryReadmeLinks(t *testing.T) {
	svc := newService(t, true)
	p, err := svc.Page(context.Background(), "notes/arrays", "/notes/arrays")
	if err != nil {
		t.Fatal(err)
	}
	if p.Source != "notes/arrays/README.md" || p.Path != "notes/arrays" || p.URL != "/notes/arrays" {
		t.Errorf("source/path/url = %q %q %q", p.Source, p.Path, p.URL)
	}
	for _, want := range []string{`href="/notes/02-complexity"`, `href="/templates/x"`} {
		if !strings.Contains(p.HTML, want) {
			t.Errorf("html missing %s: %s", want, p.HTML)
		}
	}

	bl, err := svc.Backlinks(context.Background(), "notes/02-complexity")
	if err != nil {
		t.Fatal(err)
	}
	if len(bl) != 1 || bl[0] != "notes/arrays/README" {
		t.Errorf("index resolved README links differently: %v", bl)
	}
}

func TestPage_NotFound(t *testing.T) {
	svc := newService(t, false)
	_, err := svc.Page(context.Background(), "notes/missing-topic", "")
	var nf *content.NotFoundError
	if !errors.As(err, &nf) || nf.Path != "notes/missing-topic" {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Error("should match ErrNotFound")
	}
}

func TestIndexDisabled(t *testing.T) {
	svc := newService(t, false)
	ctx := context.Background()
	if svc.IndexEnabled() {
		t.Fatal("index should be disabled")
	}
	if _, err := svc.Search(ctx, "x", 10); !errors.Is(err, apperr.ErrIndexDisabled) {
		t.Errorf("Search err = %v", err)
	}
	if _, err := svc.List(ctx, ""); !errors.Is(err, apperr.ErrIndexDisabled) {
		t.Errorf("List err = %v", err)
	}
	p, err := svc.Page(ctx, "notes/overview", "")
	if err != nil || len(p.Backlinks) != 0 {
		t.Errorf("page without index: %v, %v", err, p)
	}
}

func TestSearchAndList(t *testing.T) {
	svc := newService(t, true)
	ctx := context.Background()
	hits, err := svc.Search(ctx, "Slicing", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Path != "notes/01-python-basics" {
		t.Errorf("hits = %+v", hits)
	}
	notes, err := svc.List(ctx, "notes/")
	if err != nil || len(notes) != 3 {
		t.Errorf("List = %+v, %v", notes, err)
	}
}

func TestOutlineAndMarkdown(t *testing.T) {
	svc := newService(t, false)
	ctx := context.Background()
	hs, err := svc.Outline(ctx, "notes/01-python-basics.md")
	if err != nil || len(hs) != 2 {
		t.Fatalf("Outline = %+v, %v", hs, err)
	}
	md, err := svc.Markdown(ctx, "notes/01-python-basics")
	if err != nil || !strings.HasPrefix(md, "# Python Basics") {
		t.Errorf("Markdown = %q, %v", md, err)
	}
}
