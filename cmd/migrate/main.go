// ABOUTME: Migration utility for moving legacy department records to department-data
// ABOUTME: Provides dry-run and backup capabilities; the legacy key is never removed

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harperreed/propkit/config"
	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/persist"
	"github.com/harperreed/propkit/storage"
	"github.com/harperreed/propkit/validate"
)

// Outcome describes what a migration run did or would do.
type Outcome struct {
	Migrated  int
	Dropped   int
	BackupKey string
	Skipped   string
}

func main() {
	driver := flag.String("driver", "", "Storage driver (memory, sqlite, local, charm)")
	dbPath := flag.String("db", "", "Path to the sqlite database")
	dryRun := flag.Bool("dry-run", false, "Show what would happen without making changes")
	backup := flag.Bool("backup", true, "Copy the legacy document to a backup key before migration")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "migrate"})

	cfg, err := config.LoadDefault()
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	if *driver != "" {
		d, err := config.ParseDriver(*driver)
		if err != nil {
			logger.Fatal("invalid driver", "err", err)
		}
		cfg.Driver = d
	}
	if *dbPath != "" {
		cfg.SQLitePath = *dbPath
	}

	backend, err := config.OpenBackend(cfg)
	if err != nil {
		logger.Fatal("failed to open storage", "err", err)
	}
	defer func() { _ = backend.Close() }()

	out, err := migrate(backend, logger, *dryRun, *backup, time.Now())
	if err != nil {
		logger.Fatal("migration failed", "err", err)
	}
	if out.Skipped != "" {
		logger.Info("nothing to migrate", "reason", out.Skipped)
		return
	}
	logger.Info("migration completed", "migrated", out.Migrated, "dropped", out.Dropped, "backup", out.BackupKey, "dry_run", *dryRun)
}

// migrate copies the legacy departments document into department-data when
// the latter is absent. Legacy entries gain ids on the way.
func migrate(backend storage.Backend, logger *log.Logger, dryRun, createBackup bool, now time.Time) (Outcome, error) {
	if _, err := backend.Get(models.KeyDepartment); err == nil {
		return Outcome{Skipped: models.KeyDepartment + " already exists"}, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return Outcome{}, fmt.Errorf("failed to read %s: %w", models.KeyDepartment, err)
	}

	legacy, err := backend.Get(models.KeyDepartmentLegacy)
	if errors.Is(err, storage.ErrNotFound) {
		return Outcome{Skipped: "no legacy " + models.KeyDepartmentLegacy + " document"}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to read %s: %w", models.KeyDepartmentLegacy, err)
	}

	adapter := persist.New(backend, persist.WithLogger(logger))
	departments, report, err := persist.LoadList(adapter, models.KeyDepartmentLegacy, validate.Department, persist.FilterInvalid)
	if err != nil {
		return Outcome{}, fmt.Errorf("legacy document is unusable: %w", err)
	}
	out := Outcome{Migrated: len(departments), Dropped: report.Dropped}
	logger.Info("legacy departments found", "records", out.Migrated, "dropped", out.Dropped)

	if dryRun {
		return out, nil
	}

	if createBackup {
		out.BackupKey = fmt.Sprintf("%s.backup.%s", models.KeyDepartmentLegacy, now.Format("20060102-150405"))
		if err := backend.Set(out.BackupKey, legacy); err != nil {
			return Outcome{}, fmt.Errorf("failed to create backup: %w", err)
		}
		logger.Info("backup created", "key", out.BackupKey)
	}

	if err := adapter.Save(models.KeyDepartment, departments); err != nil {
		return Outcome{}, err
	}
	return out, nil
}
