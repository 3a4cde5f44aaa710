// Package anchor derives in-document anchor ids and display text from raw
// markdown heading text.
//
// The renderer and the outline builder both call ID on the raw heading text, so
// links from the outline always land on the rendered heading.
package anchor

import (
	"regexp"
	"strings"
)

var (
	emojiRe  = regexp.MustCompile(`[\x{1F300}-\x{1F9FF}\x{2600}-\x{26FF}\x{2700}-\x{27BF}]`)
	markupRe = regexp.MustCompile("\\*\\*|`")
	nonWord  = regexp.MustCompile(`[^\w\s-]`)
	spaceRe  = regexp.MustCompile(`\s+`)
	hyphenRe = regexp.MustCompile(`-+`)
)

// ID returns the anchor id for a raw heading.
//
//	"**Two Pointers** 🚀 Technique" -> "two-pointers-technique"
func ID(raw string) string {
	s := strings.ToLower(raw)
	s = emojiRe.ReplaceAllString(s, "")
	s = markupRe.ReplaceAllString(s, "")
	s = nonWord.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, "-")
	s = hyphenRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Text returns the heading as shown in an outline: emoji, bold markers and
// backticks removed, everything else kept.
func Text(raw string) string {
	s := emojiRe.ReplaceAllString(raw, "")
	s = markupRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
