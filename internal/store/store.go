// Package store holds the durable key-value backends the appointment
// repository mirrors its collection into. Each backend keeps whole values
// under string keys; the repository uses a single key.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing has been stored under a key.
var ErrNotFound = errors.New("store: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
