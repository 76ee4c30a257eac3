// FILE: source_test.go
package puzzlekit

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestSetPathMissingFile(t *testing.T) {
	fixture := createTestDB(t, seedPuzzles())

	src := NewSource()
	if err := src.SetPath(fixture); err != nil {
		t.Fatalf("SetPath to fixture failed: %v", err)
	}
	defer src.CloseAll()

	err := src.SetPath(filepath.Join(t.TempDir(), "nope.db"))
	if !errors.Is(err, ErrDatabaseNotFound) {
		t.Fatalf("SetPath error = %v, want ErrDatabaseNotFound", err)
	}

	// Prior resolution must be unchanged: queries still hit the fixture.
	db, err := src.Conn()
	if err != nil {
		t.Fatalf("Conn after failed SetPath: %v", err)
	}
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM puzzles").Scan(&count); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if count != len(seedPuzzles()) {
		t.Errorf("count = %d, want %d", count, len(seedPuzzles()))
	}
}

func TestConnCachesPerPath(t *testing.T) {
	src := NewSource()
	if err := src.SetPath(createTestDB(t, seedPuzzles())); err != nil {
		t.Fatalf("SetPath failed: %v", err)
	}
	defer src.CloseAll()

	first, err := src.Conn()
	if err != nil {
		t.Fatalf("First Conn failed: %v", err)
	}
	second, err := src.Conn()
	if err != nil {
		t.Fatalf("Second Conn failed: %v", err)
	}
	if first != second {
		t.Error("Conn returned a new handle for a cached path")
	}
}

func TestConnCustomPathNeverDownloads(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("download attempted for a custom path")
	}))
	defer server.Close()

	fixture := createTestDB(t, seedPuzzles())
	src := NewSource(WithDownloadURL(server.URL))
	if err := src.SetPath(fixture); err != nil {
		t.Fatalf("SetPath failed: %v", err)
	}
	defer src.CloseAll()

	if err := os.Remove(fixture); err != nil {
		t.Fatalf("Failed to remove fixture: %v", err)
	}

	_, err := src.Conn()
	if !errors.Is(err, ErrDatabaseNotFound) {
		t.Fatalf("Conn error = %v, want ErrDatabaseNotFound", err)
	}
}

func TestConnDownloadsAbsentDefault(t *testing.T) {
	payload, err := os.ReadFile(createTestDB(t, seedPuzzles()))
	if err != nil {
		t.Fatalf("Failed to read fixture bytes: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "nested", "puzzles.db")
	src := NewSource(WithDefaultPath(dest), WithDownloadURL(server.URL))
	defer src.CloseAll()

	db, err := src.Conn()
	if err != nil {
		t.Fatalf("Conn failed: %v", err)
	}
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM puzzles").Scan(&count); err != nil {
		t.Fatalf("Query against downloaded database failed: %v", err)
	}
	if count != len(seedPuzzles()) {
		t.Errorf("count = %d, want %d", count, len(seedPuzzles()))
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("Downloaded file missing: %v", err)
	}
}

func TestConnDownloadBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	src := NewSource(
		WithDefaultPath(filepath.Join(t.TempDir(), "puzzles.db")),
		WithDownloadURL(server.URL),
	)
	defer src.CloseAll()

	_, err := src.Conn()
	if !errors.Is(err, ErrDownloadFailed) {
		t.Fatalf("Conn error = %v, want ErrDownloadFailed", err)
	}
}

func TestConnDownloadNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	src := NewSource(
		WithDefaultPath(filepath.Join(t.TempDir(), "puzzles.db")),
		WithDownloadURL(server.URL),
	)
	defer src.CloseAll()

	_, err := src.Conn()
	if !errors.Is(err, ErrDownloadFailed) {
		t.Fatalf("Conn error = %v, want ErrDownloadFailed", err)
	}
}

func TestCloseAllIdempotent(t *testing.T) {
	src := NewSource()
	if err := src.SetPath(createTestDB(t, seedPuzzles())); err != nil {
		t.Fatalf("SetPath failed: %v", err)
	}

	if _, err := src.Conn(); err != nil {
		t.Fatalf("Conn failed: %v", err)
	}
	if err := src.CloseAll(); err != nil {
		t.Fatalf("CloseAll failed: %v", err)
	}
	if err := src.CloseAll(); err != nil {
		t.Fatalf("CloseAll on empty cache failed: %v", err)
	}

	// Next Conn re-resolves and reopens.
	db, err := src.Conn()
	if err != nil {
		t.Fatalf("Conn after CloseAll failed: %v", err)
	}
	defer src.CloseAll()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM puzzles").Scan(&count); err != nil {
		t.Fatalf("Query after reopen failed: %v", err)
	}
}
