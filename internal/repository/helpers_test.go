package repository

import (
	"context"
	"fmt"

	"github.com/skylane/airadmin/internal/store"
)

// failingStore rejects every write, standing in for a full or disabled
// storage medium.
type failingStore struct {
	store.Store
}

func (s *failingStore) Set(_ context.Context, key, _ string) error {
	return fmt.Errorf("set %q: %w", key, store.ErrUnavailable)
}
