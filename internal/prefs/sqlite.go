package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"vaultwidget/internal/logs"
)

// SQLiteStore persists preferences in a SQLite database file.
type SQLiteStore struct {
	*settings
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string, slots int) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create preferences directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences database: %w", err)
	}
	// One connection keeps writes ordered and lets ":memory:" behave as a
	// single database.
	db.SetMaxOpenConns(1)

	backend := &sqliteKV{db: db}
	if err := backend.createTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create preferences table: %w", err)
	}

	logs.Logger.Debug("preferences opened", "path", path)
	return &SQLiteStore{settings: newSettings(backend, slots), db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type sqliteKV struct {
	db *sql.DB
}

func (k *sqliteKV) createTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'string',
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := k.db.Exec(query)
	return err
}

func (k *sqliteKV) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := k.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return value, true, nil
}

func (k *sqliteKV) set(ctx context.Context, entries ...entry) error {
	tx, err := k.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin preference write: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO preferences (key, value, type, updated_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	`
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, query, e.key, e.value, e.valueType); err != nil {
			return fmt.Errorf("failed to write preference %s: %w", e.key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit preferences: %w", err)
	}
	return nil
}
