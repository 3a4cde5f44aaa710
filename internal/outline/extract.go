// Package outline builds the in-page table of contents of a note and tracks
// which of its sections is in view.
package outline

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/starford/pymaster/internal/anchor"
	"github.com/starford/pymaster/internal/models"
)

// DefaultExclude lists structural section titles left out of outlines.
var DefaultExclude = []string{"Why This Matters", "Table of Contents"}

var headingRe = regexp.MustCompile(`^(#{1,6})[ \t]+(.+)$`)

// Builder extracts outline entries of a single heading level.
type Builder struct {
	Level   int
	Exclude []string
}

// NewBuilder returns a Builder for level-2 headings with DefaultExclude.
func NewBuilder() *Builder {
	return &Builder{Level: 2, Exclude: DefaultExclude}
}

// Extract returns the level-2 outline of markdown using the default builder.
func Extract(markdown []byte) []models.Heading {
	return NewBuilder().Build(markdown)
}

// Build scans markdown line by line and returns the headings of b.Level in
// document order. Lines inside fenced code blocks are ignored.
func (b *Builder) Build(markdown []byte) []models.Heading {
	out := []models.Heading{}
	var fence string

	sc := bufio.NewScanner(bytes.NewReader(markdown))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")

		if marker, info := fenceMarker(line); marker != "" {
			switch {
			case fence == "":
				fence = marker
				continue
			case info == "" && strings.HasPrefix(marker, fence):
				fence = ""
				continue
			}
		}
		if fence != "" {
			continue
		}

		m := headingRe.FindStringSubmatch(line)
		if m == nil || len(m[1]) != b.Level {
			continue
		}
		raw := m[2]
		text := anchor.Text(raw)
		if b.excluded(text) {
			continue
		}
		out = append(out, models.Heading{
			ID:    anchor.ID(raw),
			Text:  text,
			Level: len(m[1]),
		})
	}
	return out
}

func (b *Builder) excluded(text string) bool {
	for _, e := range b.Exclude {
		if text == e {
			return true
		}
	}
	return false
}

// fenceMarker returns the run of ``` or ~~~ starting line and the info
// string after it. A closing fence has no info string.
func fenceMarker(line string) (marker, info string) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return "", ""
	}
	for _, ch := range []byte{'`', '~'} {
		n := 0
		for n < len(trimmed) && trimmed[n] == ch {
			n++
		}
		if n >= 3 {
			return trimmed[:n], strings.TrimSpace(trimmed[n:])
		}
	}
	return "", ""
}
