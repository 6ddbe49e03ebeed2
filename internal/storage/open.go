package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tOgg1/tick/internal/db"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options selects and configures a KV backend.
type Options struct {
	Backend       string
	Path          string
	BusyTimeoutMs int
	Logger        zerolog.Logger
}

// Open creates the KV named by opts.Backend. The sqlite backend is migrated
// before it is returned.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch opts.Backend {
	case BackendFile, "":
		return NewFileKV(opts.Path)
	case BackendMemory:
		return NewMemoryKV(), nil
	case BackendSQLite:
		database, err := db.Open(db.Config{
			Path:          opts.Path,
			BusyTimeoutMs: opts.BusyTimeoutMs,
			Logger:        opts.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if _, err := database.MigrateUp(ctx); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		return NewSQLiteKV(database), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
