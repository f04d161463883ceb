package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skylane/airadmin/internal/domain"
	"github.com/skylane/airadmin/internal/store"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.User, error)
	ReplaceAll(ctx context.Context, users []domain.User) error
}

type Users struct {
	store store.Store

	mu    sync.Mutex
	items []domain.User
}

func NewUsers(ctx context.Context, st store.Store) *Users {
	return &Users{store: st, items: loadCollection[domain.User](ctx, st, KeyUsers)}
}

// Create assigns a fresh id and creation timestamp. The record is trusted
// as given; validation happens before it reaches the repository.
func (r *Users) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	r.items = append(r.items, user)

	if err := persistCollection(ctx, r.store, KeyUsers, r.items); err != nil {
		return &user, err
	}
	return &user, nil
}

func (r *Users) Get(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			u := r.items[i]
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *Users) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	normalized := domain.NormalizeEmail(email)

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if domain.NormalizeEmail(r.items[i].Email) == normalized {
			u := r.items[i]
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *Users) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		if patch.Name != nil {
			r.items[i].Name = *patch.Name
		}
		if patch.Email != nil {
			r.items[i].Email = *patch.Email
		}
		if patch.Password != nil {
			r.items[i].Password = *patch.Password
		}
		if patch.Role != nil {
			r.items[i].Role = *patch.Role
		}
		now := time.Now().UTC()
		r.items[i].UpdatedAt = &now

		u := r.items[i]
		if err := persistCollection(ctx, r.store, KeyUsers, r.items); err != nil {
			return &u, err
		}
		return &u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *Users) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return persistCollection(ctx, r.store, KeyUsers, r.items)
		}
	}
	return domain.ErrUserNotFound
}

// List returns the collection in insertion order.
func (r *Users) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.User, len(r.items))
	copy(out, r.items)
	return out, nil
}

// ReplaceAll swaps the whole collection and persists it once. Used by the
// startup migration pass.
func (r *Users) ReplaceAll(ctx context.Context, users []domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make([]domain.User, len(users))
	copy(r.items, users)
	return persistCollection(ctx, r.store, KeyUsers, r.items)
}

var _ UserRepository = (*Users)(nil)
