package index

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/pymaster/internal/apperr"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "pymaster-test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func row(path, title, cs string) NoteRow {
	return NoteRow{Path: path, Title: title, Checksum: cs, UpdatedAt: time.Now()}
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM notes`).Scan(&count); err != nil {
		t.Fatalf("notes table missing: %v", err)
	}
	if err := db.conn.QueryRow(`SELECT count(*) FROM links`).Scan(&count); err != nil {
		t.Fatalf("links table missing: %v", err)
	}
}

func TestUpsertAndGetNote(t *testing.T) {
	db := testDB(t)
	n := row("notes/06-two-pointers", "Two Pointers", "abc123")
	n.Tags = []string{"arrays", "patterns"}
	if err := db.UpsertNote(n, "Move two indices toward each other.", []string{"notes/03-arrays-strings"}); err != nil {
		t.Fatalf("UpsertNote: %v", err)
	}
	got, err := db.GetNote("notes/06-two-pointers")
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got.Title != "Two Pointers" || got.Checksum != "abc123" {
		t.Errorf("got %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[1] != "patterns" {
		t.Errorf("tags = %v", got.Tags)
	}
}

func TestGetNote_NotFound(t *testing.T) {
	db := testDB(t)
	_, err := db.GetNote("notes/nope")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestBacklinks(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(row("notes/a", "A", "1"), "body", []string{"notes/b"})
	_ = db.UpsertNote(row("notes/c", "C", "2"), "body", []string{"notes/b", "notes/c"})

	bl, err := db.Backlinks("notes/b")
	if err != nil {
		t.Fatalf("Backlinks: %v", err)
	}
	if len(bl) != 2 || bl[0] != "notes/a" || bl[1] != "notes/c" {
		t.Fatalf("backlinks = %v", bl)
	}

	self, _ := db.Backlinks("notes/c")
	if len(self) != 0 {
		t.Errorf("self links should not count, got %v", self)
	}
}

func TestBacklinks_DirectoryReadme(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(row("notes/overview", "Overview", "1"), "body", []string{"problems"})
	_ = db.UpsertNote(row("solutions/README", "Solutions", "2"), "body", []string{"problems/README"})

	for _, target := range []string{"problems", "problems/README"} {
		bl, err := db.Backlinks(target)
		if err != nil {
			t.Fatal(err)
		}
		if len(bl) != 2 {
			t.Errorf("Backlinks(%q) = %v, want 2 entries", target, bl)
		}
	}
}

func TestDeleteNote(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(row("notes/del", "Del", "x"), "body", []string{"notes/target"})

	if err := db.DeleteNote("notes/del"); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if _, err := db.GetNote("notes/del"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("deleted note still present: %v", err)
	}
	bl, _ := db.Backlinks("notes/target")
	if len(bl) != 0 {
		t.Errorf("expected 0 backlinks after delete, got %d", len(bl))
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(row("notes/up", "Old", "1"), "old body", []string{"notes/x"})
	_ = db.UpsertNote(row("notes/up", "New", "2"), "new body", []string{"notes/y"})

	sums, _ := db.AllChecksums()
	if sums["notes/up"] != "2" {
		t.Errorf("checksum = %q, want 2", sums["notes/up"])
	}
	if bl, _ := db.Backlinks("notes/x"); len(bl) != 0 {
		t.Error("old link should be removed on upsert")
	}
	if bl, _ := db.Backlinks("notes/y"); len(bl) != 1 {
		t.Error("new link should exist")
	}
}

func TestListNotes(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(row("notes/02-complexity", "Complexity", "1"), "", nil)
	_ = db.UpsertNote(row("notes/01-python-basics", "Python Basics", "2"), "", nil)
	_ = db.UpsertNote(row("problems/README", "Problems", "3"), "", nil)

	all, err := db.ListNotes("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	notes, _ := db.ListNotes("notes/")
	if len(notes) != 2 || notes[0].Path != "notes/01-python-basics" {
		t.Errorf("notes = %+v", notes)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(row("notes/heaps", "Heaps", "1"), "heapq keeps a binary heap", nil)

	results, err := db.Search("heapq", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "notes/heaps" {
		t.Errorf("search results = %+v, want 1 hit for notes/heaps", results)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(row("notes/heaps", "Heaps", "1"), "heapq", nil)
	results, err := db.Search("   ", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %v", results)
	}
}
