package storage

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// BlobStore is the durable local storage used by the cart store: one
// key holds one opaque value. Consumers define this interface, not the
// SQLite implementation.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
