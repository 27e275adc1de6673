// Package store persists channels and their messages in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/ledge/internal/log"
	"github.com/zjrosen/ledge/internal/store/migrations"
)

// DB is an open message store.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens the store at path, creating the file and its directory when
// missing. An existing file is copied to path+".bak" before migrations run.
func Open(path string) (*DB, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	if err := backup(path); err != nil {
		return nil, fmt.Errorf("backing up store: %w", err)
	}

	dsn := "file:" + path +
		"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if err := migrateUp(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	log.Info(log.CatStore, "Opened store", "path", path)
	return &DB{conn: conn, path: path}, nil
}

func migrateUp(conn *sql.DB) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("preparing migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("preparing migrations: %w", err)
	}
	// m.Close would close conn along with the driver.
	defer func() { _ = src.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	version, dirty, err := m.Version()
	if err == nil {
		log.Debug(log.CatStore, "Store schema ready", "version", version, "dirty", dirty)
	}
	return nil
}

func backup(path string) error {
	src, err := os.Open(path) // #nosec G304 -- path is cleaned by caller
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(path+".bak", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Path returns the database file location.
func (d *DB) Path() string {
	return d.path
}
