// ABOUTME: Tests for the sqlite kv driver
// ABOUTME: Each test opens a fresh database file under a temp dir
package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := OpenDatabase(dbPath)
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&name)
	if err != nil {
		t.Fatalf("Table kv not found: %v", err)
	}

	var mode string
	err = db.QueryRow("PRAGMA journal_mode").Scan(&mode)
	if err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("Expected WAL mode, got %s", mode)
	}
}

func TestOpenDatabaseInvalidPath(t *testing.T) {
	// A directory cannot be created under a regular file, even as root.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	dbPath := filepath.Join(blocker, "sub", "test.db")

	_, err := OpenDatabase(dbPath)
	if err == nil {
		t.Errorf("Expected error for invalid path, but OpenDatabase succeeded")
	}
}

func TestOpenDatabaseReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	kv, err := OpenKV(dbPath)
	if err != nil {
		t.Fatalf("Initial OpenKV failed: %v", err)
	}
	if err := kv.Set("summary", `{"background":"bg"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	_ = kv.Close()

	// CREATE TABLE IF NOT EXISTS must tolerate an existing file
	kv, err = OpenKV(dbPath)
	if err != nil {
		t.Fatalf("OpenKV should handle re-initialization gracefully, but got error: %v", err)
	}
	defer kv.Close()

	got, err := kv.Get("summary")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if got != `{"background":"bg"}` {
		t.Errorf("Expected stored summary, got %s", got)
	}
}
