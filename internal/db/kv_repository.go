package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrKeyNotFound is returned by Get for absent keys.
var ErrKeyNotFound = errors.New("key not found")

// KVRepository stores string values by key in the kv table.
type KVRepository struct {
	db *DB
}

// NewKVRepository creates a new KVRepository.
func NewKVRepository(db *DB) *KVRepository {
	return &KVRepository{db: db}
}

// Set writes value under key, creating or replacing it.
func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("key is required")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	return r.db.TransactionWithRetry(ctx, 0, 0, func(tx *sql.Tx) error {
		// UPDATE then INSERT keeps to syntax every sqlite build supports.
		result, err := tx.ExecContext(ctx, `
			UPDATE kv SET value = ?, updated_at = ? WHERE key = ?
		`, value, now, key)
		if err != nil {
			return fmt.Errorf("failed to update kv: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows > 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO kv (key, value, created_at, updated_at) VALUES (?, ?, ?, ?)
		`, key, value, now, now); err != nil {
			return fmt.Errorf("failed to insert kv: %w", err)
		}
		return nil
	})
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (r *KVRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, strings.TrimSpace(key)).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to read kv: %w", err)
	}
	return value, nil
}
