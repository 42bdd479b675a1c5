// Package store defines the string-keyed byte store the repository persists to.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key has never been written or was deleted.
	ErrNotFound = errors.New("key not found")
	// ErrQuotaExceeded is wrapped by Put when the backend has no room for the value.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Store is a flat key-value store. Values are opaque bytes (JSON in practice).
// Delete of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
