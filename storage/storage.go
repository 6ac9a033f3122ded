// ABOUTME: Durable key-value storage port shared by every storage driver
// ABOUTME: Values are JSON text; absence is reported with ErrNotFound
package storage

import (
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Driver identifies a concrete storage implementation.
type Driver string

const (
	DriverMemory Driver = "memory" // process lifetime only (tests / ephemeral)
	DriverSQLite Driver = "sqlite" // embedded sqlite file
	DriverLocal  Driver = "local"  // badger directory, no sync
	DriverCharm  Driver = "charm"  // charm kv synced with a charm server
)

// KV is the minimal storage contract the persistence layer depends on.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// Backend is a KV owned by the process that opened it.
type Backend interface {
	KV
	Keys() ([]string, error)
	Close() error
}

// Memory is an in-process Backend.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Close() error { return nil }
