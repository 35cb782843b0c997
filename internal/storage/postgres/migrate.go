package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratep "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file source for migrations dir
)

// Migrate applies migrations from dir to db.
func Migrate(db *sql.DB, dir string) error {
	driver, err := migratep.WithInstance(db, &migratep.Config{})
	if err != nil {
		return fmt.Errorf("failed to create database migrate driver: %w", err)
	}

	migrator, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	switch v, d, err := migrator.Version(); {
	case err == nil:
		log.Infof("database version %d with dirty state %t", v, d)
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info("database version: nil")
	default:
		return fmt.Errorf("failed to get version: %w", err)
	}

	switch err := migrator.Up(); {
	case err == nil:
		log.Info("database was migrated")
	case errors.Is(err, migrate.ErrNoChange):
		log.Info("database is up-to-date")
	default:
		return fmt.Errorf("failed to migrate db: %w", err)
	}

	return nil
}
