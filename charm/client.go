// ABOUTME: Charm KV client wrapper with automatic sync support
// ABOUTME: Implements the string-keyed storage backend over charm kv or local badger

package charm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"

	"github.com/harperreed/propkit/storage"
)

// Client wraps charm KV with config and sync helpers. Exactly one of kv and
// local is set.
type Client struct {
	kv     *kv.KV
	local  *localKV
	config *Config
	mu     sync.RWMutex
}

// NewClient opens the charm kv database and pulls remote changes when
// auto-sync is on.
func NewClient(cfg *Config) (*Client, error) {
	cfg = cfg.withDefaults()

	// Set charm host before opening KV
	_ = os.Setenv("CHARM_HOST", cfg.Host)

	db, err := kv.OpenWithDefaults(AppName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	c := &Client{
		kv:     db,
		config: cfg,
	}

	if cfg.AutoSync {
		_ = db.Sync()
	}

	return c, nil
}

// OpenLocal opens a badger directory that is never synced.
func OpenLocal(dir string) (*Client, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	l, err := openLocalKV(filepath.Clean(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return &Client{
		local:  l,
		config: &Config{Host: "localhost", AutoSync: false},
	}, nil
}

// Close releases the local badger database.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.local != nil {
		return c.local.Close()
	}
	// charm/kv doesn't expose Close(); badger is cleaned up on process exit
	return nil
}

// Config returns the client's config.
func (c *Client) Config() *Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// IsLocal reports whether the client has no sync server.
func (c *Client) IsLocal() bool {
	return c.local != nil
}

// ID returns the charm user ID for this device.
func (c *Client) ID() (string, error) {
	if c.local != nil {
		return "", errors.New("local store has no charm account")
	}
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

// IsConnected checks if the client can connect to charm cloud.
func (c *Client) IsConnected() bool {
	_, err := c.ID()
	return err == nil
}

// Sync performs a manual sync with the charm server.
func (c *Client) Sync() error {
	if c.local != nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Sync()
}

// Get retrieves the document stored under key.
func (c *Client) Get(key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var (
		value []byte
		err   error
	)
	if c.local != nil {
		value, err = c.local.Get([]byte(key))
	} else {
		value, err = c.kv.Get([]byte(key))
	}
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// Set stores a document and syncs if enabled.
func (c *Client) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.local != nil {
		return c.local.Set([]byte(key), []byte(value))
	}
	if err := c.kv.Set([]byte(key), []byte(value)); err != nil {
		return err
	}

	// Sync while still holding lock to avoid race condition
	if c.config.AutoSync {
		_ = c.kv.Sync()
	}
	return nil
}

// Remove deletes a key and syncs if enabled. Absent keys are not an error.
func (c *Client) Remove(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.local != nil {
		return c.local.Delete([]byte(key))
	}
	if err := c.kv.Delete([]byte(key)); err != nil {
		return err
	}

	if c.config.AutoSync {
		_ = c.kv.Sync()
	}
	return nil
}

// Keys returns all stored keys in order.
func (c *Client) Keys() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var (
		raw [][]byte
		err error
	)
	if c.local != nil {
		raw, err = c.local.Keys()
	} else {
		raw, err = c.kv.Keys()
	}
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys, nil
}

// Reset wipes all data from the KV store (use with caution!)
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.local != nil {
		return c.local.Reset()
	}
	return c.kv.Reset()
}

var _ storage.Backend = (*Client)(nil)
