package nav

import "strings"

// Crumb is one breadcrumb segment.
type Crumb struct {
	Label   string `json:"label"`
	Path    string `json:"path"`
	Current bool   `json:"current"`
}

// Breadcrumbs derives the trail for a URL path. The overview page collapses
// to a single "overview" crumb; the root yields none.
func Breadcrumbs(urlPath string) []Crumb {
	var segs []string
	for _, s := range strings.Split(urlPath, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) == 0 {
		return nil
	}
	if len(segs) == 2 && segs[0] == "notes" && segs[1] == "overview" {
		return []Crumb{{Label: "overview", Path: "/notes/overview", Current: true}}
	}

	out := make([]Crumb, len(segs))
	for i, s := range segs {
		out[i] = Crumb{
			Label:   strings.ReplaceAll(s, "-", " "),
			Path:    "/" + strings.Join(segs[:i+1], "/"),
			Current: i == len(segs)-1,
		}
	}
	return out
}
