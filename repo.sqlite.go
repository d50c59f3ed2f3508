package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"
)

// sqliteStorage stores all collections in a single SQLite table.
//
//	collections(name, data)  PRIMARY KEY (name)
type sqliteStorage struct {
	logger *zap.Logger
	db     *sql.DB
}

// GetSQLiteClient opens the database inside the data folder and ensures
// the collections table exists.
func GetSQLiteClient(config *SQLiteConfig, dataDir string) (*sql.DB, error) {
	path := config.FileName
	if !filepath.IsAbs(path) {
		path = filepath.Join(dataDir, path)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	if _, err = db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable wal mode: %v", err)
	}
	if _, err = db.Exec(`CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		data TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create collections table: %v", err)
	}
	return db, nil
}

// NewSQLiteStorage provides an instance of sqlite-based collections storage.
func NewSQLiteStorage(logger *zap.Logger, db *sql.DB) Storage {
	return &sqliteStorage{logger: logger, db: db}
}

// Read retrieves the encoded collection.
func (ss *sqliteStorage) Read(ctx context.Context, name CollectionName) ([]byte, error) {
	var data string
	err := ss.db.QueryRowContext(ctx, "SELECT data FROM collections WHERE name = ?", string(name)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCollectionMissing
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

// Write inserts or replaces the encoded collection.
func (ss *sqliteStorage) Write(ctx context.Context, name CollectionName, data []byte) error {
	_, err := ss.db.ExecContext(ctx,
		`INSERT INTO collections (name, data) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data`,
		string(name), string(data))
	return err
}

// Close closes the underlying database.
func (ss *sqliteStorage) Close() error {
	return ss.db.Close()
}
