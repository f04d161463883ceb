// Package directory implements admin user management. Unlike ticket
// deletion, deleting a user leaves that user's bookings in place; the query
// layer filters the resulting orphans out of rendered views.
package directory

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/skylane/airadmin/internal/domain"
	"github.com/skylane/airadmin/internal/repository"
)

type DirectoryUseCase interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.User, error)
}

type Service struct {
	users      repository.UserRepository
	bcryptCost int
}

func NewService(users repository.UserRepository, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, bcryptCost: bcryptCost}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *domain.Role
}

func (s *Service) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.NewFieldError("name", "name is required")
	}

	email := domain.NormalizeEmail(input.Email)
	if email == "" {
		return nil, domain.NewFieldError("email", "email is required")
	}
	if !domain.ValidEmail(email) {
		return nil, domain.NewFieldError("email", "invalid email address")
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
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
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, domain.NewFieldError("role", "unknown role")
	}

	return s.users.Create(ctx, domain.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: string(hash),
		Role:     role,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error) {
	patch := domain.UserPatch{Role: input.Role}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.NewFieldError("name", "name is required")
		}
		patch.Name = &name
	}
	if input.Email != nil {
		email := domain.NormalizeEmail(*input.Email)
		if !domain.ValidEmail(email) {
			return nil, domain.NewFieldError("email", "invalid email address")
		}
		existing, err := s.users.GetByEmail(ctx, email)
		if err == nil && existing.ID != id {
			return nil, domain.ErrEmailTaken
		}
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		patch.Email = &email
	}
	if input.Password != nil {
		password := domain.NormalizePassword(*input.Password)
		if len(password) < 6 {
			return nil, domain.NewFieldError("password", "password must be at least 6 characters long")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		patch.Password = &hashed
	}
	if input.Role != nil && *input.Role != domain.RoleUser && *input.Role != domain.RoleAdmin {
		return nil, domain.NewFieldError("role", "unknown role")
	}

	return s.users.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

var _ DirectoryUseCase = (*Service)(nil)
