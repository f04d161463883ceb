// Package repository holds the three collection repositories. Each one keeps
// an in-memory mirror of its collection, loaded from the store once at
// construction, and writes the whole collection back on every mutation.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/skylane/airadmin/internal/store"
)

// Storage keys. A compatible deployment expects exactly these names.
const (
	KeyUsers    = "users"
	KeyTickets  = "tickets"
	KeyBookings = "bookings"
)

// loadCollection reads and decodes one collection. Absent or malformed data
// is an empty collection, never an error; malformed data is discarded.
func loadCollection[T any](ctx context.Context, st store.Store, key string) []T {
	raw, err := st.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Warn("failed to load collection, starting empty", "key", key, "error", err)
		}
		return nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.Warn("discarding malformed collection data", "key", key, "error", err)
		return nil
	}
	return items
}

// persistCollection writes the full collection back. On failure the in-memory
// mirror keeps the change; the returned error satisfies
// errors.Is(err, store.ErrUnavailable) unless encoding itself failed.
func persistCollection[T any](ctx context.Context, st store.Store, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := st.Set(ctx, key, string(raw)); err != nil {
		slog.Warn("collection write failed, change is in-memory only", "key", key, "error", err)
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
