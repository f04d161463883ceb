package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/skylane/airadmin/internal/domain"
	"github.com/skylane/airadmin/internal/repository"
	"github.com/skylane/airadmin/internal/store"
)

func newManager(t *testing.T) (*Manager, *repository.Users, store.Store) {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemoryStore()
	users := repository.NewUsers(ctx, st)
	return NewManager(users, st, bcrypt.MinCost), users, st
}

func TestRegisterThenLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(t)

	_, err := m.Register(ctx, RegisterInput{Name: "Ann", Email: " X@Y.com ", Password: " secret "})
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))

	user, err := m.Login(ctx, "x@y.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "x@y.com", user.Email)
	assert.True(t, m.IsAuthenticated())
}

func TestRegisterSetsSessionLikeLogin(t *testing.T) {
	ctx := context.Background()
	m, _, st := newManager(t)

	user, err := m.Register(ctx, RegisterInput{Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Empty(t, user.Password)
	assert.True(t, m.IsAuthenticated())

	raw, err := st.Get(ctx, KeyAuthUser)
	require.NoError(t, err)

	var persisted map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Equal(t, "ann@x.com", persisted["email"])
	assert.NotContains(t, persisted, "password")
}

func TestRegisterDuplicateEmailDiffersOnlyInCase(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(t)

	_, err := m.Register(ctx, RegisterInput{Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = m.Register(ctx, RegisterInput{Email: "  ANN@X.COM ", Password: "other-secret"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
		field string
	}{
		{"missing email", RegisterInput{Password: "secret1"}, "email"},
		{"invalid email", RegisterInput{Email: "not-an-email", Password: "secret1"}, "email"},
		{"missing domain dot", RegisterInput{Email: "a@b", Password: "secret1"}, "email"},
		{"missing password", RegisterInput{Email: "a@b.com"}, "password"},
		{"short password", RegisterInput{Email: "a@b.com", Password: "12345"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newManager(t)
			_, err := m.Register(ctx, tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)

			var fieldErr *domain.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
			assert.False(t, m.IsAuthenticated())
		})
	}
}

func TestLoginDistinguishesFailures(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(t)

	_, err := m.Register(ctx, RegisterInput{Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))

	_, err = m.Login(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrCredentialsRequired)

	_, err = m.Login(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrNoAccount)

	_, err = m.Login(ctx, "ann@x.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrWrongPassword)

	assert.False(t, m.IsAuthenticated())
}

func TestLogoutClearsPersistedSession(t *testing.T) {
	ctx := context.Background()
	m, _, st := newManager(t)

	_, err := m.Register(ctx, RegisterInput{Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))

	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.Current())
	_, err = st.Get(ctx, KeyAuthUser)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRestorePersistedSession(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	users := repository.NewUsers(ctx, st)

	first := NewManager(users, st, bcrypt.MinCost)
	_, err := first.Register(ctx, RegisterInput{Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	second := NewManager(users, st, bcrypt.MinCost)
	require.NoError(t, second.Restore(ctx))
	require.True(t, second.IsAuthenticated())
	assert.Equal(t, "ann@x.com", second.Current().Email)
}

func TestRestoreDiscardsCorruptSession(t *testing.T) {
	ctx := context.Background()
	m, _, st := newManager(t)
	require.NoError(t, st.Set(ctx, KeyAuthUser, "{{{not json"))

	require.NoError(t, m.Restore(ctx))
	assert.False(t, m.IsAuthenticated())

	_, err := st.Get(ctx, KeyAuthUser)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMigrateNormalizesLegacyRecords(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	// Seed a legacy record: unnormalized email, trimmed-plaintext era password.
	legacy := `[{"id":"1","email":" Ann@X.com ","password":" secret1 ","role":"user","createdAt":"2024-01-01T00:00:00Z"}]`
	require.NoError(t, st.Set(ctx, repository.KeyUsers, legacy))

	users := repository.NewUsers(ctx, st)
	m := NewManager(users, st, bcrypt.MinCost)

	migrated, err := m.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, migrated)

	stored, err := users.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", stored.Email)
	assert.NotEqual(t, "secret1", stored.Password)

	user, err := m.Login(ctx, " ANN@x.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", user.Email)
}

func TestMigrateIsNoOpOnCleanData(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(t)

	_, err := m.Register(ctx, RegisterInput{Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	migrated, err := m.Migrate(ctx)
	require.NoError(t, err)
	assert.Zero(t, migrated)

	migrated, err = m.Migrate(ctx)
	require.NoError(t, err)
	assert.Zero(t, migrated)
}
