package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ziadkadry99/commentsync/internal/db"
)

// SQLiteBackend stores preferences in the preferences table.
type SQLiteBackend struct {
	db *db.DB
}

// NewSQLiteBackend creates a backend on an opened database.
func NewSQLiteBackend(database *db.DB) *SQLiteBackend {
	return &SQLiteBackend{db: database}
}

func (b *SQLiteBackend) Load(ctx context.Context, name string) (string, bool, error) {
	var value string
	err := b.db.QueryRowContext(ctx, "SELECT value FROM preferences WHERE name = ?", name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading preference %s: %w", name, err)
	}
	return value, true, nil
}

func (b *SQLiteBackend) Save(ctx context.Context, name, value string) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO preferences (name, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		name, value,
	)
	if err != nil {
		return fmt.Errorf("writing preference %s: %w", name, err)
	}
	return nil
}
