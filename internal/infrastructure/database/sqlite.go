package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteDB wraps the embedded database handle and its lifecycle.
// modernc.org/sqlite is a pure-Go driver, so a single binary carries
// the whole record store.
type SQLiteDB struct {
	DB   *sql.DB
	Path string
}

// NewSQLiteDB creates a new SQLiteDB instance. Connect must be called
// before use.
func NewSQLiteDB(path string) *SQLiteDB {
	return &SQLiteDB{Path: path}
}

// Connect opens the database file, applies the pragmas and bootstraps
// the schema.
func (d *SQLiteDB) Connect(ctx context.Context) error {
	log.Println("[DATABASE] Opening SQLite database...")

	if dir := filepath.Dir(d.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", d.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One writer connection; SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database ping failed: %w", err)
	}

	// WAL plus a busy timeout lets readers coexist with the writer.
	if _, err := db.ExecContext(ctx,
		`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000; PRAGMA foreign_keys=ON; PRAGMA synchronous=NORMAL;`,
	); err != nil {
		db.Close()
		return fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := bootstrap(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("schema bootstrap failed: %w", err)
	}

	d.DB = db
	log.Println("[DATABASE] SQLite database ready")
	return nil
}

// bootstrap creates the schema when it does not exist yet.
func bootstrap(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS authors (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL UNIQUE,
    sns_urls   TEXT NOT NULL DEFAULT '[]',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS images (
    id                        INTEGER PRIMARY KEY AUTOINCREMENT,
    author_id                 INTEGER NOT NULL REFERENCES authors(id),
    main_image_path           TEXT NOT NULL,
    main_image_has_background INTEGER NOT NULL DEFAULT 0,
    tags                      TEXT NOT NULL DEFAULT '[]',
    comments                  TEXT NOT NULL DEFAULT '',
    created_at                TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at                TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sub_images (
    image_id       INTEGER NOT NULL REFERENCES images(id) ON DELETE CASCADE,
    position       INTEGER NOT NULL,
    filename       TEXT NOT NULL,
    has_background INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (image_id, position)
);

CREATE INDEX IF NOT EXISTS idx_images_author_id ON images(author_id);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return err
	}
	return nil
}

// HealthCheck verifies the database is reachable.
// Called by the health endpoint.
func (d *SQLiteDB) HealthCheck(ctx context.Context) error {
	if d.DB == nil {
		return fmt.Errorf("database is not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := d.DB.PingContext(healthCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// Close releases the database handle.
func (d *SQLiteDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
