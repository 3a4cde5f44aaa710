// Package nav holds the navigation rail tree, its expand/collapse state and
// breadcrumb derivation. Everything here is pure: state changes return new
// values and views are projections of (tree, state, current path).
package nav

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Item is one entry of the navigation rail.
type Item struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Path     string `yaml:"path" json:"path"`
	Children []Item `yaml:"children,omitempty" json:"children,omitempty"`
}

// sectionRoots only match their own path exactly.
var sectionRoots = map[string]struct{}{
	"/notes":       {},
	"/problems":    {},
	"/solutions":   {},
	"/templates":   {},
	"/cheatsheets": {},
	"/progress":    {},
}

// DefaultTree returns the built-in navigation rail.
func DefaultTree() []Item {
	note := func(id, slug string) Item {
		return Item{ID: id, Title: slug, Path: "/notes/" + slug}
	}
	return []Item{
		{ID: "start", Title: "00-START-HERE", Path: "/notes/00-START-HERE"},
		{ID: "roadmap", Title: "00-ROADMAP", Path: "/notes/00-ROADMAP"},
		{ID: "how-to-learn", Title: "00-HOW-TO-LEARN", Path: "/notes/00-HOW-TO-LEARN"},
		{ID: "notes", Title: "Notes", Path: "/notes", Children: []Item{
			note("python-basics", "01-python-basics"),
			note("complexity", "02-complexity"),
			note("arrays-strings", "03-arrays-strings"),
			note("linked-lists", "04-linked-lists"),
			note("stacks-queues", "05-stacks-queues"),
			note("recursion", "06-recursion"),
			note("trees", "07-trees"),
			note("graphs", "08-graphs"),
			note("dynamic-programming", "09-dynamic-programming"),
			note("sorting-searching", "10-sorting-searching"),
		}},
		{ID: "problems", Title: "Problems", Path: "/problems"},
		{ID: "solutions", Title: "Solutions", Path: "/solutions"},
		{ID: "templates", Title: "Templates", Path: "/templates"},
		{ID: "cheatsheets", Title: "Cheatsheets", Path: "/cheatsheets"},
		{ID: "progress", Title: "Progress", Path: "/progress"},
	}
}

// LoadTree reads a YAML list of items from path. An empty path yields the
// default tree.
func LoadTree(path string) ([]Item, error) {
	if path == "" {
		return DefaultTree(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("nav: read tree: %w", err)
	}
	var items []Item
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("nav: parse tree: %w", err)
	}
	if err := validate(items, map[string]struct{}{}); err != nil {
		return nil, err
	}
	return items, nil
}

func validate(items []Item, seen map[string]struct{}) error {
	for _, it := range items {
		if it.ID == "" || it.Path == "" {
			return fmt.Errorf("nav: item %q needs id and path", it.Title)
		}
		if !strings.HasPrefix(it.Path, "/") {
			return fmt.Errorf("nav: item %q path must start with /", it.ID)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("nav: duplicate item id %q", it.ID)
		}
		seen[it.ID] = struct{}{}
		if err := validate(it.Children, seen); err != nil {
			return err
		}
	}
	return nil
}

// IsActive reports whether the rail entry for itemPath is highlighted while
// the browser is at current. Section roots match exactly; other entries also
// match their descendants.
func IsActive(itemPath, current string) bool {
	if current == itemPath {
		return true
	}
	if _, root := sectionRoots[itemPath]; root {
		return false
	}
	return strings.HasPrefix(current, itemPath+"/")
}

// Node is the rendered projection of an Item.
type Node struct {
	Item
	Depth       int    `json:"depth"`
	Active      bool   `json:"active"`
	Expanded    bool   `json:"expanded"`
	HasChildren bool   `json:"has_children"`
	Nodes       []Node `json:"nodes,omitempty"`
}

// Indent is the left padding in pixels for the node's depth.
func (n Node) Indent() int { return n.Depth*16 + 16 }

// Project builds the visible rail for current. Children of collapsed items
// are omitted.
func Project(tree []Item, exp Expanded, current string) []Node {
	return project(tree, exp, current, 0)
}

func project(items []Item, exp Expanded, current string, depth int) []Node {
	out := make([]Node, 0, len(items))
	for _, it := range items {
		n := Node{
			Item:        it,
			Depth:       depth,
			Active:      IsActive(it.Path, current),
			HasChildren: len(it.Children) > 0,
		}
		n.Children = nil
		if n.HasChildren {
			n.Expanded = exp.Has(it.ID)
			if n.Expanded {
				n.Nodes = project(it.Children, exp, current, depth+1)
			}
		}
		out = append(out, n)
	}
	return out
}
