// ABOUTME: SQLite implementation of the storage backend
// ABOUTME: Each key maps to one row whose value is the section's JSON text
package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/propkit/storage"
)

// KV stores section documents in the kv table.
type KV struct {
	db *sql.DB
}

// NewKV wraps an already initialized database.
func NewKV(db *sql.DB) *KV {
	return &KV{db: db}
}

// OpenKV opens (or creates) the database file at path.
func OpenKV(path string) (*KV, error) {
	database, err := OpenDatabase(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return NewKV(database), nil
}

func (k *KV) Get(key string) (string, error) {
	var value string
	err := k.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (k *KV) Set(key, value string) error {
	_, err := k.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (k *KV) Remove(key string) error {
	if _, err := k.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (k *KV) Keys() ([]string, error) {
	rows, err := k.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (k *KV) Close() error {
	return k.db.Close()
}
