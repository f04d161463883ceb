// Package store provides the durable key/value boundary the collection
// repositories persist through. A value is an opaque string; repositories
// keep whole collections serialized under a single key each.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key has no value.
	ErrNotFound = errors.New("key not found")

	// ErrUnavailable wraps write failures of the underlying medium. The
	// caller's in-memory state is still valid; the change is just not
	// guaranteed to survive a restart.
	ErrUnavailable = errors.New("storage unavailable")
)

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
