package nav

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestIsActive(t *testing.T) {
	tests := []struct {
		item, current string
		want          bool
	}{
		{"/notes", "/notes", true},
		{"/notes", "/notes/00-START-HERE", false},
		{"/problems", "/problems/two-sum", false},
		{"/progress", "/progress", true},
		{"/notes/08-graphs", "/notes/08-graphs", true},
		{"/notes/08-graphs", "/notes/08-graphs/bfs", true},
		{"/notes/08-graphs", "/notes/08-graphs-extra", false},
		{"/notes/07-trees", "/notes/08-graphs", false},
	}
	for _, tt := range tests {
		if got := IsActive(tt.item, tt.current); got != tt.want {
			t.Errorf("IsActive(%q, %q) = %v, want %v", tt.item, tt.current, got, tt.want)
		}
	}
}

func TestReduce_TogglePure(t *testing.T) {
	start := DefaultExpanded()
	closed := Reduce(start, Toggle("notes"))

	if !start.Has("notes") {
		t.Fatal("input state was mutated")
	}
	if closed.Has("notes") {
		t.Error("toggle should collapse notes")
	}
	reopened := Reduce(closed, Toggle("notes"))
	if !reopened.Has("notes") {
		t.Error("second toggle should expand notes")
	}
}

func TestReduce_ExpandCollapse(t *testing.T) {
	e := Reduce(NewExpanded(), Action{Kind: ActionExpand, ID: "problems"})
	e = Reduce(e, Action{Kind: ActionExpand, ID: "problems"})
	if got := e.IDs(); !reflect.DeepEqual(got, []string{"problems"}) {
		t.Errorf("IDs = %v", got)
	}
	e = Reduce(e, Action{Kind: ActionCollapse, ID: "problems"})
	if e.Has("problems") {
		t.Error("collapse should remove id")
	}
}

func TestProject(t *testing.T) {
	tree := DefaultTree()
	nodes := Project(tree, DefaultExpanded(), "/notes/08-graphs")
	if len(nodes) != len(tree) {
		t.Fatalf("len = %d, want %d", len(nodes), len(tree))
	}

	var notes Node
	for _, n := range nodes {
		if n.ID == "notes" {
			notes = n
		}
	}
	if !notes.HasChildren || !notes.Expanded {
		t.Fatalf("notes node = %+v", notes)
	}
	if notes.Active {
		t.Error("section root must not be active on a child page")
	}
	if len(notes.Nodes) != 10 {
		t.Fatalf("children = %d, want 10", len(notes.Nodes))
	}
	var active []string
	for _, c := range notes.Nodes {
		if c.Active {
			active = append(active, c.ID)
		}
		if c.Depth != 1 || c.Indent() != 32 {
			t.Errorf("child %s depth=%d indent=%d", c.ID, c.Depth, c.Indent())
		}
	}
	if !reflect.DeepEqual(active, []string{"graphs"}) {
		t.Errorf("active children = %v", active)
	}

	collapsed := Project(tree, Reduce(DefaultExpanded(), Toggle("notes")), "/notes/08-graphs")
	for _, n := range collapsed {
		if n.ID == "notes" && len(n.Nodes) != 0 {
			t.Error("collapsed section should hide children")
		}
	}
}

func TestLoadTree(t *testing.T) {
	def, err := LoadTree("")
	if err != nil || len(def) != len(DefaultTree()) {
		t.Fatalf("default tree: %v, %d items", err, len(def))
	}

	p := filepath.Join(t.TempDir(), "nav.yaml")
	body := "- id: intro\n  title: Intro\n  path: /notes/intro\n- id: more\n  title: More\n  path: /notes\n  children:\n    - id: a\n      title: A\n      path: /notes/a\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	items, err := LoadTree(p)
	if err != nil {
		t.Fatalf("LoadTree: %v", err)
	}
	if len(items) != 2 || len(items[1].Children) != 1 || items[1].Children[0].Path != "/notes/a" {
		t.Errorf("items = %+v", items)
	}
}

func TestLoadTree_Invalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nav.yaml")
	_ = os.WriteFile(p, []byte("- id: a\n  path: /x\n- id: a\n  path: /y\n"), 0o644)
	if _, err := LoadTree(p); err == nil {
		t.Error("expected duplicate id error")
	}
	_ = os.WriteFile(p, []byte("- id: a\n  path: relative\n"), 0o644)
	if _, err := LoadTree(p); err == nil {
		t.Error("expected path error")
	}
}

func TestBreadcrumbs(t *testing.T) {
	got := Breadcrumbs("/notes/03-arrays-strings")
	want := []Crumb{
		{Label: "notes", Path: "/notes"},
		{Label: "03 arrays strings", Path: "/notes/03-arrays-strings", Current: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Breadcrumbs = %+v, want %+v", got, want)
	}
}

func TestBreadcrumbs_Overview(t *testing.T) {
	got := Breadcrumbs("/notes/overview")
	if len(got) != 1 || got[0].Label != "overview" || !got[0].Current {
		t.Errorf("Breadcrumbs = %+v", got)
	}
}

func TestBreadcrumbs_Root(t *testing.T) {
	if got := Breadcrumbs("/"); got != nil {
		t.Errorf("Breadcrumbs(/) = %+v, want nil", got)
	}
}
