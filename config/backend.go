// ABOUTME: Opens the storage backend named by the configuration
// ABOUTME: One factory for the memory, sqlite, local badger and charm drivers

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harperreed/propkit/charm"
	"github.com/harperreed/propkit/db"
	"github.com/harperreed/propkit/storage"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Drivers lists the accepted driver names.
var Drivers = []storage.Driver{
	storage.DriverMemory, storage.DriverSQLite, storage.DriverLocal, storage.DriverCharm,
}

func ParseDriver(name string) (storage.Driver, error) {
	for _, d := range Drivers {
		if string(d) == name {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w %q (want one of %v)", ErrUnknownDriver, name, Drivers)
}

// OpenBackend opens the configured driver. sqlite is the default.
func OpenBackend(cfg *Config) (storage.Backend, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = storage.DriverSQLite
	}
	switch driver {
	case storage.DriverMemory:
		return storage.NewMemory(), nil
	case storage.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		return db.OpenKV(cfg.SQLitePath)
	case storage.DriverLocal:
		return charm.OpenLocal(cfg.LocalDir)
	case storage.DriverCharm:
		return charm.NewClient(cfg.Charm)
	default:
		return nil, fmt.Errorf("%w %q (want one of %v)", ErrUnknownDriver, driver, Drivers)
	}
}
