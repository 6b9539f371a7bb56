package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"tableflip.dev/shelf/pkg/inventory"
)

const (
	sqliteFile   = "inventory.db"
	snapshotName = "inventory"
)

// sqliteStore keeps the JSON snapshot as a single row.
type sqliteStore struct {
	db       *sql.DB
	basePath string
}

func openSQLite(basePath string) (*sqliteStore, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(basePath, sqliteFile))
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshot (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create snapshot table: %w", err)
	}
	return &sqliteStore{db: db, basePath: basePath}, nil
}

func (s *sqliteStore) Load() (*inventory.Inventory, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM snapshot WHERE name = ?`, snapshotName).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: read %s: %w", s.Path(), os.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", s.Path(), err)
	}
	return decode(payload)
}

func (s *sqliteStore) Save(inv *inventory.Inventory) (retErr error) {
	data, err := encode(inv)
	if err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.Exec(`INSERT INTO snapshot(name, payload) VALUES(?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`, snapshotName, data); err != nil {
		return fmt.Errorf("store: upsert snapshot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

func (s *sqliteStore) Watch(ctx context.Context) (<-chan Event, error) {
	return watchFile(ctx, s.basePath, sqliteFile)
}

func (s *sqliteStore) Path() string {
	return filepath.Join(s.basePath, sqliteFile)
}

func (s *sqliteStore) Close() error { return s.db.Close() }
