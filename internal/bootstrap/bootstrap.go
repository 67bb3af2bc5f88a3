// Package bootstrap brings a cold container filesystem to a serving-ready
// state: data directory, database file, schema migrations, static assets and
// the seeded administrator, in that order.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"m365-dashboard/internal/adapters/secondary/sqlite"
	"m365-dashboard/internal/config"
	"m365-dashboard/internal/core/services"
)

const (
	dataDirMode  = 0o755
	dataFileMode = 0o664
)

// Run executes the full startup sequence and returns the open database
// handle for the server to use. Every step except the admin seed is fatal:
// the first error aborts the sequence and the caller is expected to exit
// non-zero so the container runtime restarts from scratch.
//
// The sequence is idempotent; running it against already-initialized state
// changes nothing.
func Run(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	if err := EnsureDataDir(cfg.Storage.DataDir); err != nil {
		return nil, err
	}
	log.WithField("dir", cfg.Storage.DataDir).Info("data directory ready")

	if err := EnsureDatabaseFile(cfg.Storage.DatabasePath); err != nil {
		return nil, err
	}
	log.WithField("path", cfg.Storage.DatabasePath).Info("database file ready")

	db, err := sqlite.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := sqlite.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	copied, err := CollectStatic(cfg.Static.Sources, cfg.Static.Root)
	if err != nil {
		db.Close()
		return nil, err
	}
	log.WithField("files", copied).Info("static assets collected")

	// Best-effort: a missing default admin must never block the service.
	SeedAdmin(ctx, db, cfg)

	return db, nil
}

// EnsureDataDir creates the data directory when absent and sets its mode to
// 0755 regardless.
func EnsureDataDir(dir string) error {
	if err := os.MkdirAll(dir, dataDirMode); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := os.Chmod(dir, dataDirMode); err != nil {
		return fmt.Errorf("chmod data directory: %w", err)
	}
	return nil
}

// EnsureDatabaseFile creates an empty database file with mode 0664 when none
// exists. An existing file is left untouched apart from its mode.
func EnsureDatabaseFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), dataDirMode); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, dataFileMode)
	if err != nil {
		return fmt.Errorf("create database file: %w", err)
	}
	f.Close()
	// OpenFile perms are filtered through the umask; enforce explicitly.
	if err := os.Chmod(path, dataFileMode); err != nil {
		return fmt.Errorf("chmod database file: %w", err)
	}
	return nil
}

// SeedAdmin creates the default administrator unless one already exists.
// Failures are logged and swallowed.
func SeedAdmin(ctx context.Context, db *sql.DB, cfg *config.Config) {
	users := services.NewUserService(sqlite.NewUserRepository(db))
	created, err := users.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password)
	switch {
	case err != nil:
		log.WithError(err).Warn("admin seed failed, continuing startup")
	case created:
		log.WithField("username", cfg.Admin.Username).Warn("seeded default admin account with insecure default password, rotate it")
	default:
		log.WithField("username", cfg.Admin.Username).Info("admin account already exists")
	}
}
