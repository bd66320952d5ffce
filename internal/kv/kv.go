// Package kv provides the key-value storage abstraction every store
// component is constructed with. Each collection lives as one serialized
// value under one key; callers read the full value, transform it and write
// it back. The interface carries no transactional guarantees across keys.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has never been written
// or has been removed.
var ErrKeyNotFound = errors.New("key not found")

// Store is a synchronous string-keyed byte store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
