package storage

import (
	"context"
	"errors"

	"github.com/tOgg1/tick/internal/db"
)

// SQLiteKV stores values in the kv table of a tick database.
type SQLiteKV struct {
	db   *db.DB
	repo *db.KVRepository
}

// NewSQLiteKV wraps an opened, migrated database.
func NewSQLiteKV(database *db.DB) *SQLiteKV {
	return &SQLiteKV{db: database, repo: db.NewKVRepository(database)}
}

// DB exposes the underlying database so other repositories can share it.
func (s *SQLiteKV) DB() *db.DB { return s.db }

func (s *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLiteKV) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, value)
}

func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
