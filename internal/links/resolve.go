// Package links turns hrefs found in markdown notes into application targets.
package links

import "strings"

// Kind classifies a resolved href.
type Kind string

const (
	KindExternal Kind = "external"
	KindAnchor   Kind = "anchor"
	KindInternal Kind = "internal"
)

// Target is the result of resolving an href against the note it appears in.
// Route is set only for internal targets and always starts with "/".
type Target struct {
	Kind  Kind   `json:"kind"`
	Href  string `json:"href"`
	Route string `json:"route,omitempty"`
}

// NewTab reports whether the target should open outside the application.
func (t Target) NewTab() bool { return t.Kind == KindExternal }

// Resolve classifies href and, for internal references, rewrites it into an
// application route relative to currentNotePath.
//
// "../" is applied once and never checked against the root, so deep parent
// references can produce routes above the content root.
func Resolve(href, currentNotePath string) Target {
	switch {
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"),
		strings.HasPrefix(href, "//"):
		// Protocol-relative URLs leave the site just like absolute ones.
		return Target{Kind: KindExternal, Href: href}
	case strings.HasPrefix(href, "#"):
		return Target{Kind: KindAnchor, Href: href}
	}

	ref, fragment := href, ""
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		ref, fragment = ref[:i], ref[i:]
	}
	ref = strings.TrimSuffix(ref, ".md")

	var route string
	switch {
	case strings.HasPrefix(ref, "./"):
		dir := parentSegments(currentNotePath, 1)
		route = "/" + strings.Join(append(dir, ref[2:]), "/")
	case strings.HasPrefix(ref, "../"):
		dir := parentSegments(currentNotePath, 2)
		route = "/" + strings.Join(append(dir, ref[3:]), "/")
	default:
		route = "/" + strings.TrimPrefix(ref, "/")
	}
	return Target{Kind: KindInternal, Href: href, Route: route + fragment}
}

// parentSegments splits notePath on "/" and drops the last n segments.
func parentSegments(notePath string, n int) []string {
	segs := strings.Split(notePath, "/")
	if n > len(segs) {
		n = len(segs)
	}
	out := make([]string, 0, len(segs)-n+1)
	return append(out, segs[:len(segs)-n]...)
}
