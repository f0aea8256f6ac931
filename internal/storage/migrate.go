package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SchemaVersion is the migration version the repository queries expect.
const SchemaVersion = 2

// RunMigrations brings the database at dbPath to SchemaVersion. A database
// already at that version is left untouched.
func RunMigrations(dbPath string) error {
	return MigrateToVersion(dbPath, SchemaVersion)
}

// MigrateToVersion moves the database to an exact version. Only upgrades are
// supported.
func MigrateToVersion(dbPath string, version uint) error {
	return migrateTo(dbPath, func(m *migrate.Migrate) error { return m.Migrate(version) })
}

// SchemaVersionOf reports the applied migration version, 0 for a fresh database.
func SchemaVersionOf(dbPath string) (uint, error) {
	var v uint
	err := migrateTo(dbPath, func(m *migrate.Migrate) error {
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		if err != nil {
			return err
		}
		if dirty {
			return fmt.Errorf("schema version %d is dirty", version)
		}
		v = version
		return nil
	})
	return v, err
}

func migrateTo(dbPath string, step func(*migrate.Migrate) error) error {
	// Separate connection: closing the migrate instance closes its database.
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
