// Package session tracks the single authenticated identity. Credentials are
// compared at this boundary only; the stored password is a bcrypt hash, and
// the identity persisted under the session key is always redacted.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/skylane/airadmin/internal/domain"
	"github.com/skylane/airadmin/internal/repository"
	"github.com/skylane/airadmin/internal/store"
)

// KeyAuthUser is the storage key for the active session identity. Absent
// when logged out.
const KeyAuthUser = "authUser"

type Manager struct {
	users      repository.UserRepository
	store      store.Store
	bcryptCost int

	mu      sync.Mutex
	current *domain.User
}

func NewManager(users repository.UserRepository, st store.Store, bcryptCost int) *Manager {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Manager{users: users, store: st, bcryptCost: bcryptCost}
}

// Login resolves the account by normalized email and checks the password
// against the stored hash. The three failure modes stay distinct: missing
// input, unknown email, and wrong password.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.User, error) {
	normalizedEmail := domain.NormalizeEmail(email)
	normalizedPassword := domain.NormalizePassword(password)
	if normalizedEmail == "" || normalizedPassword == "" {
		return nil, domain.ErrCredentialsRequired
	}

	user, err := m.users.GetByEmail(ctx, normalizedEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNoAccount
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(normalizedPassword)) != nil {
		return nil, domain.ErrWrongPassword
	}

	return m.establish(ctx, *user)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// Register validates the input, creates the user and then behaves exactly
// like a successful login for the new account.
func (m *Manager) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" {
		return nil, domain.NewFieldError("email", "email is required")
	}
	if !domain.ValidEmail(email) {
		return nil, domain.NewFieldError("email", "invalid email address")
	}
	if _, err := m.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	password := domain.NormalizePassword(input.Password)
	if password == "" {
		return nil, domain.NewFieldError("password", "password is required")
	}
	if len(password) < 6 {
		return nil, domain.NewFieldError("password", "password must be at least 6 characters long")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.bcryptCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}

	user, err := m.users.Create(ctx, domain.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: string(hash),
		Role:     role,
	})
	if err != nil && !errors.Is(err, store.ErrUnavailable) {
		return nil, err
	}

	return m.establish(ctx, *user)
}

// establish makes the user the current identity and persists the redacted
// copy. A write failure downgrades durability, not the login itself.
func (m *Manager) establish(ctx context.Context, user domain.User) (*domain.User, error) {
	redacted := user.Redacted()

	raw, err := json.Marshal(redacted)
	if err != nil {
		return nil, err
	}
	if err := m.store.Set(ctx, KeyAuthUser, string(raw)); err != nil {
		slog.Warn("session not persisted, will not survive restart", "error", err)
	}

	m.mu.Lock()
	m.current = &redacted
	m.mu.Unlock()
	return &redacted, nil
}

// Logout clears the in-memory identity and its persisted copy. The users
// collection is untouched.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	return m.store.Remove(ctx, KeyAuthUser)
}

func (m *Manager) Current() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	u := *m.current
	return &u
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}

// Restore loads the persisted identity, if any. A corrupt value is removed
// and the session stays unauthenticated; neither case is an error.
func (m *Manager) Restore(ctx context.Context) error {
	raw, err := m.store.Get(ctx, KeyAuthUser)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		slog.Warn("discarding corrupt session record", "error", err)
		return m.store.Remove(ctx, KeyAuthUser)
	}

	m.mu.Lock()
	m.current = &user
	m.mu.Unlock()
	return nil
}

// Migrate is the one-time startup hygiene pass: emails are normalized and
// legacy plaintext passwords are trimmed and upgraded to hashes. The
// corrected collection is persisted once; on already-clean data this is a
// no-op. Returns the number of corrected records.
func (m *Manager) Migrate(ctx context.Context) (int, error) {
	users, err := m.users.List(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range users {
		email := domain.NormalizeEmail(users[i].Email)
		password := domain.NormalizePassword(users[i].Password)

		if password != "" && !isBcryptHash(password) {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), m.bcryptCost)
			if err != nil {
				return 0, err
			}
			password = string(hash)
		}

		if email != users[i].Email || password != users[i].Password {
			users[i].Email = email
			users[i].Password = password
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}

	if err := m.users.ReplaceAll(ctx, users); err != nil {
		return changed, err
	}
	slog.Info("migrated user records to normalized format", "count", changed)
	return changed, nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
