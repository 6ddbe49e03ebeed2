// Package storage persists the task list through a small key-value facade.
//
// A Gateway encodes the list as a JSON array under one well-known key and
// never reports failures to its caller: read problems yield an empty list and
// write problems leave the previous value in place. Both are logged.
package storage

import (
	"context"
	"errors"
)

// DefaultKey is the key the task list is stored under.
const DefaultKey = "todos"

// ErrClosed is returned by a KV used after Close.
var ErrClosed = errors.New("store closed")

// KV is a string key-value store.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string) error

	// Close releases underlying resources.
	Close() error
}
