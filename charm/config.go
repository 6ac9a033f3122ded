// ABOUTME: Configuration for Charm KV backend connection
// ABOUTME: Handles server settings and auto-sync preferences

package charm

import (
	"time"

	"github.com/charmbracelet/charm/kv"
)

const (
	// DefaultCharmHost is the self-hosted 2389 research server.
	DefaultCharmHost = "charm.2389.dev"

	// AppName is the application name for Charm KV database.
	AppName = "propkit"
)

// Config holds charm connection settings.
type Config struct {
	// Host is the charm server hostname (default: charm.2389.dev)
	Host string `json:"host,omitempty"`

	// AutoSync enables automatic sync after every write operation
	AutoSync bool `json:"auto_sync"`

	// StaleThreshold is the duration before data is considered stale and needs a sync
	StaleThreshold time.Duration `json:"stale_threshold,omitempty"`
}

// DefaultConfig returns a new config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:           DefaultCharmHost,
		AutoSync:       true,
		StaleThreshold: kv.DefaultStaleThreshold,
	}
}

// withDefaults fills fields left empty by a partial config file.
func (c *Config) withDefaults() *Config {
	if c == nil {
		return DefaultConfig()
	}
	out := *c
	if out.Host == "" {
		out.Host = DefaultCharmHost
	}
	if out.StaleThreshold == 0 {
		out.StaleThreshold = kv.DefaultStaleThreshold
	}
	return &out
}
