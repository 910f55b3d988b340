// Package testutil provides shared test helpers for setting up site
// directories, snapshots, and search databases.
package testutil

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/starford/raido/internal/content"
	"github.com/starford/raido/internal/search"
	"github.com/starford/raido/internal/site"
	"github.com/starford/raido/internal/storage"
)

// TestDB creates a temporary search database that is automatically
// cleaned up.
func TestDB(t *testing.T) *search.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "raido-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := search.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestSite creates a temporary site directory with a storage.Provider.
func TestSite(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// Seed writes the given files (path -> content) into the store.
func Seed(t *testing.T, store *storage.FS, files map[string]string) {
	t.Helper()
	for path, body := range files {
		if err := store.Write(path, []byte(body)); err != nil {
			t.Fatalf("seed %s: %v", path, err)
		}
	}
}

// Snapshot loads the tree and builds the index from the store.
func Snapshot(t *testing.T, store *storage.FS) (*content.Tree, *site.Index) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	tree, err := content.Load(context.Background(), store, logger)
	if err != nil {
		t.Fatalf("load tree: %v", err)
	}
	index, err := site.Build(context.Background(), tree.Root())
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	return tree, index
}
