// internal/storage/storage.go
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value
var ErrNotFound = errors.New("storage: key not found")

// Store is a minimal key-value persistence port. The cart treats client
// storage as a database, so the contract is deliberately small: get, set,
// delete. Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
