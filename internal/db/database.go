// Package db provides the sqlite-backed persistence gateway. Surveys and
// responses are stored as JSON blobs keyed by id, matching the key-value
// contract the core expects from any local store.
package db

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations
var dbMigrations embed.FS

// Open opens (or creates) the sqlite database at path and brings the schema
// up to date.
func Open(path string) (*sql.DB, error) {
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := d.Exec("PRAGMA foreign_keys = ON"); err != nil {
		d.Close()
		return nil, err
	}
	if err := migrateDB(d); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func migrateDB(d *sql.DB) error {
	src, err := iofs.New(dbMigrations, "migrations")
	if err != nil {
		return err
	}
	dst, err := sqlite3.WithInstance(d, &sqlite3.Config{})
	if err != nil {
		return err
	}
	migrator, err := migrate.NewWithInstance("iofs", src, "sqlite3", dst)
	if err != nil {
		return err
	}
	err = migrator.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		// schema already up to date
		return nil
	}
	return err
}
