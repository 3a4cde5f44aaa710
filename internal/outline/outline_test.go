package outline

import (
	"testing"
)

const sample = `# Arrays & Strings

Intro text.

## 🎯 Why This Matters

## **Two Pointers** 🚀 Technique

### Variant: fast/slow

## Sliding Window

` + "```python" + `
## not a heading, a comment in code
` + "```" + `

## Table of Contents

## Prefix Sums
`

func TestExtract_LevelTwoOnly(t *testing.T) {
	got := Extract([]byte(sample))
	want := []struct{ id, text string }{
		{"two-pointers-technique", "Two Pointers  Technique"},
		{"sliding-window", "Sliding Window"},
		{"prefix-sums", "Prefix Sums"},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].ID != w.id || got[i].Text != w.text || got[i].Level != 2 {
			t.Errorf("[%d] = %+v, want id=%q text=%q", i, got[i], w.id, w.text)
		}
	}
}

func TestExtract_ThreeOfFour(t *testing.T) {
	doc := "## One\n\n### Sub\n\n## Two\n\n## Three\n"
	got := Extract([]byte(doc))
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, text := range []string{"One", "Two", "Three"} {
		if got[i].Text != text {
			t.Errorf("[%d].Text = %q, want %q", i, got[i].Text, text)
		}
	}
}

func TestExtract_ExcludesTableOfContents(t *testing.T) {
	got := Extract([]byte("## Table of Contents\n## Real Section\n"))
	if len(got) != 1 || got[0].ID != "real-section" {
		t.Errorf("got %+v", got)
	}
}

func TestExtract_NotHeadings(t *testing.T) {
	doc := "##NoSpace\n####### seven\n #not\n~~~\n## fenced\n~~~\n"
	if got := Extract([]byte(doc)); len(got) != 0 {
		t.Errorf("expected no headings, got %+v", got)
	}
}

func TestExtract_InfoStringDoesNotCloseFence(t *testing.T) {
	doc := "## Alpha ##\n```\n## inside\n```python\n## still inside?\n```\n\n## Beta\n"
	got := Extract([]byte(doc))
	if len(got) != 2 || got[0].ID != "alpha" || got[1].ID != "beta" {
		t.Errorf("got %+v, want alpha and beta", got)
	}
}

func TestExtract_LongerFenceCloses(t *testing.T) {
	doc := "~~~~\n## hidden\n~~~\n## still hidden\n~~~~~  \n## Shown\n"
	got := Extract([]byte(doc))
	if len(got) != 1 || got[0].ID != "shown" {
		t.Errorf("got %+v", got)
	}
}

func TestExtract_Empty(t *testing.T) {
	got := Extract(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Extract(nil) = %#v, want empty non-nil", got)
	}
}

func TestBuilder_CustomLevel(t *testing.T) {
	b := &Builder{Level: 3}
	got := b.Build([]byte(sample))
	if len(got) != 1 || got[0].ID != "variant-fastslow" {
		t.Errorf("got %+v", got)
	}
}
