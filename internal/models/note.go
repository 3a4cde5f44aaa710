// Package models defines the domain types shared by the renderer, the outline
// builder and the HTTP layers.
package models

import "time"

// Heading is one entry of a note outline. ID is derived from the raw heading
// text, so two headings with the same text share an ID.
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// NoteMetadata is a lightweight representation returned by list operations.
// Path is relative to the content root and keeps its .md extension.
type NoteMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
