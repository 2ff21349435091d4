package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get when the key does not exist.
var ErrNotFound = errors.New("kv: key not found")

// Store is the key-value persistence port. Values are opaque JSON documents.
// No transactions, versioning or expiry.
type Store interface {
	Set(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	// GetByPrefix returns every value whose key starts with prefix, in no
	// particular order.
	GetByPrefix(ctx context.Context, prefix string) ([][]byte, error)
	Ping(ctx context.Context) error
	Close() error
}
