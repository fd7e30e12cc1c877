// Package testutil provides shared test helpers for content fixtures and
// index databases.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/raido/internal/index"
	"github.com/starford/raido/internal/storage"
)

// TestContent creates a temporary content directory with a storage provider.
func TestContent(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// WriteFile writes a markdown fixture under dir, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "raido-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
