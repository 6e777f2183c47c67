package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/wellywell/ssccscan/internal/config"
)

// Demo schema of the wareneingang table, for development setups and tests.
// Production tables belong to the warehouse system and are never migrated.
//
//go:embed migrations
var migrationsFS embed.FS

// Migrate applies the demo schema over a dedicated connection.
func Migrate(conf *config.DatabaseConfig) error {
	d, err := open(conf)
	if err != nil {
		return err
	}

	src, err := iofs.New(migrationsFS, "migrations/"+d.conf.Driver)
	if err != nil {
		d.Close()
		return fmt.Errorf("failed to read migrations %w", err)
	}

	var driver database.Driver
	switch d.conf.Driver {
	case config.DriverPostgres:
		driver, err = migratepgx.WithInstance(d.db, &migratepgx.Config{})
	case config.DriverMySQL:
		driver, err = migratemysql.WithInstance(d.db, &migratemysql.Config{})
	case config.DriverSQLite:
		driver, err = migratesqlite.WithInstance(d.db, &migratesqlite.Config{})
	default:
		d.Close()
		return fmt.Errorf("no migrations for driver %s", d.conf.Driver)
	}
	if err != nil {
		d.Close()
		return fmt.Errorf("failed to init migration driver %w", classify(err))
	}

	m, err := migrate.NewWithInstance("iofs", src, d.conf.Driver, driver)
	if err != nil {
		d.Close()
		return fmt.Errorf("failed to init migrations %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate %w", err)
	}
	return nil
}
