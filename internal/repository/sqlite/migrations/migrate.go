// Package migrations holds the embedded schema and applies it with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"worklog/internal/logging"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var migrationsFS embed.FS

// Up applies every pending migration to the database at dbPath and returns
// the resulting schema version. It opens its own connection because the
// migrate driver closes the handle it is given.
func Up(dbPath string, logger *logging.Logger) (uint, error) {
	return run(dbPath, logger, func(m *migrate.Migrate) error { return m.Up() })
}

// Down reverts every migration.
func Down(dbPath string, logger *logging.Logger) (uint, error) {
	return run(dbPath, logger, func(m *migrate.Migrate) error { return m.Down() })
}

func run(dbPath string, logger *logging.Logger, step func(*migrate.Migrate) error) (uint, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.WithComponent(logging.ComponentMigrate)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, fmt.Errorf("open migration database: %w", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		db.Close()
		return 0, fmt.Errorf("create sqlite driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, ".")
	if err != nil {
		driver.Close()
		return 0, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		source.Close()
		driver.Close()
		return 0, fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		logger.Debug("schema is empty", logging.FieldPath, dbPath)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty", version)
	}

	logger.Debug("schema up to date", logging.FieldPath, dbPath, logging.FieldVersion, version)
	return version, nil
}
