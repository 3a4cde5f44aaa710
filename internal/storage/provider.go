// Package storage defines the content-root file-system abstraction.
package storage

import "github.com/starford/pymaster/internal/models"

// Provider is the read-only interface over the markdown content root.
type Provider interface {
	// List returns metadata for every .md file under dir (relative to the root).
	List(dir string) ([]models.NoteMetadata, error)
	// Read returns the raw bytes of the file at path (relative to the root).
	Read(path string) ([]byte, error)
	// Root returns the absolute path of the content root.
	Root() string
}
