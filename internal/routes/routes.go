// Package routes maps browser URL paths onto note paths.
package routes

import "strings"

// Overview is where the root and unknown paths land.
const Overview = "/notes/overview"

// Kind classifies a resolved URL.
type Kind int

const (
	// KindNote renders NotePath.
	KindNote Kind = iota
	// KindProgress renders the progress tracker.
	KindProgress
	// KindRedirect sends the browser to Location.
	KindRedirect
)

// Match is the outcome of Resolve.
type Match struct {
	Kind     Kind
	NotePath string
	Location string
}

// aliases are the fixed section landing pages.
var aliases = map[string]string{
	"/problems":    "problems/README",
	"/solutions":   "solutions/README",
	"/templates":   "templates/common-implementations",
	"/cheatsheets": "cheatsheets/patterns",
}

// Resolve maps urlPath to a page. /notes/<rest> renders notes/<rest> (the
// overview when rest is empty); the section aliases render their landing
// note and pages below a section render the matching note; /progress is the
// tracker; anything else redirects to the overview.
func Resolve(urlPath string) Match {
	if urlPath == "/progress" {
		return Match{Kind: KindProgress}
	}
	if urlPath == "/notes" || strings.HasPrefix(urlPath, "/notes/") {
		rest := strings.Trim(strings.TrimPrefix(urlPath, "/notes"), "/")
		if rest == "" {
			rest = "overview"
		}
		return Match{Kind: KindNote, NotePath: "notes/" + rest}
	}
	if np, ok := aliases[strings.TrimSuffix(urlPath, "/")]; ok {
		return Match{Kind: KindNote, NotePath: np}
	}
	for section := range aliases {
		if rest, ok := strings.CutPrefix(urlPath, section+"/"); ok {
			if rest = strings.Trim(rest, "/"); rest != "" {
				return Match{Kind: KindNote, NotePath: strings.TrimPrefix(section, "/") + "/" + rest}
			}
		}
	}
	return Match{Kind: KindRedirect, Location: Overview}
}

// URL is the inverse of Resolve for note paths: the browser path that shows
// notePath. A directory README is shown at the directory's path.
func URL(notePath string) string {
	for alias, np := range aliases {
		if np == notePath {
			return alias
		}
	}
	notePath = strings.TrimPrefix(notePath, "/")
	if dir, ok := strings.CutSuffix(notePath, "/README"); ok {
		notePath = dir
	}
	return "/" + notePath
}

// LinkBase is the note path relative links in notePath's file resolve
// against when it is opened at URL(notePath).
func LinkBase(notePath string) string {
	m := Resolve(URL(notePath))
	if m.Kind != KindNote {
		return notePath
	}
	return m.NotePath
}
