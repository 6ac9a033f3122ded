// ABOUTME: SQLite connection setup for the kv storage driver
// ABOUTME: Creates the file's directory, enables WAL with a busy timeout and applies the schema
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const pragmas = "?_journal_mode=WAL&_busy_timeout=5000"

// OpenDatabase opens the file at path and makes sure the kv table exists.
func OpenDatabase(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	database, err := sql.Open("sqlite3", path+pragmas)
	if err != nil {
		return nil, err
	}
	// Section saves share one connection so writers queue instead of failing.
	database.SetMaxOpenConns(1)

	if err := InitSchema(database); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return database, nil
}
