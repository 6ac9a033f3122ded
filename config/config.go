// ABOUTME: Application configuration stored as JSON under the XDG data directory
// ABOUTME: Handles .env loading, PROPKIT_* environment overrides and driver settings

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/harperreed/propkit/charm"
	"github.com/harperreed/propkit/storage"
)

const (
	// AppDir is the directory name under XDG_DATA_HOME.
	AppDir = "propkit"

	// FileName is the config file inside AppDir.
	FileName = "config.json"
)

// Environment variables that override the config file.
const (
	EnvDriver     = "PROPKIT_STORAGE_DRIVER"
	EnvSQLitePath = "PROPKIT_SQLITE_PATH"
	EnvLocalDir   = "PROPKIT_LOCAL_DIR"
	EnvCharmHost  = "PROPKIT_CHARM_HOST"
	EnvAutoSync   = "PROPKIT_AUTO_SYNC"
)

// Config selects and configures the storage driver.
type Config struct {
	Driver     storage.Driver `json:"driver"`
	SQLitePath string         `json:"sqlite_path,omitempty"`
	LocalDir   string         `json:"local_dir,omitempty"`
	Charm      *charm.Config  `json:"charm,omitempty"`

	path string
}

// DataDir returns the XDG data directory for propkit.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppDir)
}

// DefaultPath returns where the config file lives.
func DefaultPath() string {
	return filepath.Join(DataDir(), FileName)
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Driver:     storage.DriverSQLite,
		SQLitePath: filepath.Join(DataDir(), "propkit.db"),
		LocalDir:   filepath.Join(DataDir(), "kv"),
		Charm:      charm.DefaultConfig(),
		path:       DefaultPath(),
	}
}

// LoadDefault reads .env from the working directory when present, then the
// config file at DefaultPath.
func LoadDefault() (*Config, error) {
	_ = godotenv.Load()
	return Load(DefaultPath())
}

// Load reads config from path. A missing file yields defaults. Environment
// overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if driver := os.Getenv(EnvDriver); driver != "" {
		c.Driver = storage.Driver(strings.ToLower(driver))
	}
	if path := os.Getenv(EnvSQLitePath); path != "" {
		c.SQLitePath = path
	}
	if dir := os.Getenv(EnvLocalDir); dir != "" {
		c.LocalDir = dir
	}
	if c.Charm == nil {
		c.Charm = charm.DefaultConfig()
	}
	if host := os.Getenv(EnvCharmHost); host != "" {
		c.Charm.Host = host
	}
	if autoSync := os.Getenv(EnvAutoSync); autoSync != "" {
		c.Charm.AutoSync = autoSync == "true" || autoSync == "1"
	}
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Driver == "" {
		c.Driver = d.Driver
	}
	if c.SQLitePath == "" {
		c.SQLitePath = d.SQLitePath
	}
	if c.LocalDir == "" {
		c.LocalDir = d.LocalDir
	}
	if c.Charm.Host == "" {
		c.Charm.Host = d.Charm.Host
	}
	if c.Charm.StaleThreshold == 0 {
		c.Charm.StaleThreshold = d.Charm.StaleThreshold
	}
}

// Path is the file the config was loaded from and saves to.
func (c *Config) Path() string {
	return c.path
}

// Save persists the config with restricted permissions.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// SetAutoSync enables or disables charm auto-sync and saves.
func (c *Config) SetAutoSync(enabled bool) error {
	c.Charm.AutoSync = enabled
	return c.Save()
}

// SetDriver validates and stores the driver, then saves.
func (c *Config) SetDriver(driver string) error {
	d, err := ParseDriver(driver)
	if err != nil {
		return err
	}
	c.Driver = d
	return c.Save()
}
