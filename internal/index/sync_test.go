package index

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/pymaster/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func contentEnv(t *testing.T, files map[string]string) (string, storage.Provider, *DB) {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return store.Root(), store, testDB(t)
}

func TestSync_IndexesAndLinks(t *testing.T) {
	_, store, db := contentEnv(t, map[string]string{
		"notes/overview.md":         "# Overview\nStart with [basics](./01-python-basics.md).\n",
		"notes/01-python-basics.md": "# Python Basics\nSee [problems](../problems/README).\n",
		"problems/README.md":        "# Problems\n",
	})
	if err := Sync(db, store, discardLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	n, err := db.GetNote("notes/01-python-basics")
	if err != nil {
		t.Fatal(err)
	}
	if n.Title != "Python Basics" {
		t.Errorf("title = %q", n.Title)
	}

	bl, _ := db.Backlinks("notes/01-python-basics")
	if len(bl) != 1 || bl[0] != "notes/overview" {
		t.Errorf("backlinks = %v", bl)
	}
	bl, _ = db.Backlinks("problems/README")
	if len(bl) != 1 || bl[0] != "notes/01-python-basics" {
		t.Errorf("problems backlinks = %v", bl)
	}
}

func TestSync_RemovesStale(t *testing.T) {
	root, store, db := contentEnv(t, map[string]string{
		"notes/a.md": "# A\n",
		"notes/b.md": "# B\n",
	})
	logger := discardLogger()
	if err := Sync(db, store, logger); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(root, "notes", "b.md")); err != nil {
		t.Fatal(err)
	}
	if err := Sync(db, store, logger); err != nil {
		t.Fatal(err)
	}
	sums, _ := db.AllChecksums()
	if _, ok := sums["notes/b"]; ok {
		t.Error("stale note should be removed")
	}
	if _, ok := sums["notes/a"]; !ok {
		t.Error("surviving note should stay indexed")
	}
}

func TestNotePath(t *testing.T) {
	if got := NotePath("notes/overview.md"); got != "notes/overview" {
		t.Errorf("NotePath = %q", got)
	}
}
