package mcpserver

// ContentGuide describes how the content root is organised and how links in
// notes map to pages.
const ContentGuide = `# PyMaster Content Guide

Notes are Markdown files below the content root. A note path never carries the
` + "`.md`" + ` extension; the file is found by probing, in order:

1. ` + "`<path>.md`" + `
2. ` + "`<path>/README.md`" + `

## Sections

| URL            | Note                               |
|----------------|------------------------------------|
| /notes/<name>  | notes/<name>                       |
| /notes         | notes/overview                     |
| /problems      | problems/README                    |
| /solutions     | solutions/README                   |
| /templates     | templates/common-implementations   |
| /cheatsheets   | cheatsheets/patterns               |

## Links

- ` + "`http://`" + ` and ` + "`https://`" + ` links are external and open in a new tab.
- ` + "`#section`" + ` scrolls to a heading on the same page.
- ` + "`/path`" + ` is an application route used as is.
- ` + "`./name`" + ` resolves next to the current note.
- ` + "`../name`" + ` resolves in the folder above the current note.
- ` + "`name`" + ` without a prefix is taken as ` + "`/name`" + `.

## Headings

Heading ids are the lower-cased heading text with markup and emoji removed and
runs of spaces replaced by a hyphen: ` + "`## **Two Pointers** 🚀 Technique`" + `
becomes ` + "`#two-pointers-technique`" + `.

## Frontmatter

An optional YAML block may set ` + "`title`" + ` and a ` + "`tags`" + ` list:

` + "```" + `markdown
---
title: Graphs
tags:
  - bfs
  - dfs
---
` + "```" + `
`
