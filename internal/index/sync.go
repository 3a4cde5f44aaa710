package index

import (
	"log/slog"
	"strings"
	"time"

	"github.com/starford/pymaster/internal/checksum"
	"github.com/starford/pymaster/internal/parser"
	"github.com/starford/pymaster/internal/routes"
	"github.com/starford/pymaster/internal/storage"
)

// NotePath maps a content-root file path to its note path.
func NotePath(file string) string {
	return strings.TrimSuffix(file, ".md")
}

// Sync walks the content root and brings the index up to date:
//   - new or changed files are parsed and upserted
//   - notes whose file is gone are deleted
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	indexed := 0
	for _, m := range metas {
		np := NotePath(m.Path)
		disk[np] = struct{}{}

		if checksums[np] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexFile(db, np, data, m.UpdatedAt); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		indexed++
	}

	removed := 0
	for p := range checksums {
		if _, ok := disk[p]; ok {
			continue
		}
		if err := db.DeleteNote(p); err != nil {
			logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			continue
		}
		removed++
	}

	logger.Info("sync: done",
		slog.Int("files", len(metas)),
		slog.Int("indexed", indexed),
		slog.Int("removed", removed))
	return nil
}

// indexFile parses data and upserts it under notePath. Links resolve the way
// the page does when opened at its canonical URL.
func indexFile(db *DB, notePath string, data []byte, modTime time.Time) error {
	res, err := parser.Parse(data, routes.LinkBase(notePath))
	if err != nil {
		return err
	}
	if modTime.IsZero() {
		modTime = time.Now()
	}
	row := NoteRow{
		Path:      notePath,
		Title:     res.Title,
		Checksum:  checksum.Sum(data),
		Tags:      res.Tags,
		UpdatedAt: modTime.UTC(),
	}
	return db.UpsertNote(row, res.Body, res.Links)
}
