package index

// NoteIndex is the read/write surface over the note index. Consumers depend
// on it instead of *DB so handlers can be tested against fakes.
type NoteIndex interface {
	UpsertNote(n NoteRow, body string, links []string) error
	DeleteNote(notePath string) error
	GetNote(notePath string) (*NoteRow, error)
	ListNotes(prefix string) ([]NoteRow, error)
	Search(query string, limit int) ([]SearchResult, error)
	Backlinks(notePath string) ([]string, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

var _ NoteIndex = (*DB)(nil)
