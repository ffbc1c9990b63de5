package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ValentinaMarinG/react-project-backend/internal/core/domain"
	"github.com/ValentinaMarinG/react-project-backend/internal/core/port"
	"github.com/ValentinaMarinG/react-project-backend/internal/repository"
)

// UserService exposes the CRUD surface around the auth core. Reads return
// public views; the password hash never leaves this package.
type UserService struct {
	users        port.UserRepository
	hasher       port.PasswordHasher
	registration *RegistrationService
}

// NewUserService constructs a UserService.
func NewUserService(users port.UserRepository, hasher port.PasswordHasher, registration *RegistrationService) *UserService {
	return &UserService{
		users:        users,
		hasher:       hasher,
		registration: registration,
	}
}

// GetByID returns the public view of a single user.
func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	if id == "" {
		return domain.User{}, fmt.Errorf("user id is required")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}

	return user.PublicView(), nil
}

// List returns all users, optionally filtered by the active flag.
func (s *UserService) List(ctx context.Context, active *bool) ([]domain.User, error) {
	users, err := s.users.List(ctx, port.UserFilter{Active: active})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	result := make([]domain.User, 0, len(users))
	for _, u := range users {
		result = append(result, u.PublicView())
	}

	return result, nil
}

// Create runs the same validation and hashing pipeline as registration.
func (s *UserService) Create(ctx context.Context, input RegisterInput) (domain.User, error) {
	user, err := s.registration.RegisterUser(ctx, input)
	if err != nil {
		return domain.User{}, err
	}
	return user.PublicView(), nil
}

// UpdateInput carries optional field updates. Nil pointers leave the
// stored value untouched. The location invariant is not re-validated on
// update; it holds only at creation time.
type UpdateInput struct {
	Firstname    *string
	Lastname     *string
	Country      *string
	Department   *string
	Municipality *string
	State        *string
	DocumentType *string
	Document     *string
	Email        *string
	Password     *string
	Avatar       *string
	Role         *string
	Active       *bool
}

// Update applies the provided fields to an existing user. A supplied
// password is re-hashed; an absent one leaves the stored hash as is.
func (s *UserService) Update(ctx context.Context, id string, input UpdateInput) error {
	if id == "" {
		return fmt.Errorf("user id is required")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if input.Firstname != nil {
		user.Firstname = *input.Firstname
	}
	if input.Lastname != nil {
		user.Lastname = *input.Lastname
	}
	if input.Country != nil {
		user.Country = *input.Country
	}
	if input.Department != nil {
		user.Department = *input.Department
	}
	if input.Municipality != nil {
		user.Municipality = *input.Municipality
	}
	if input.State != nil {
		user.State = *input.State
	}
	if input.DocumentType != nil {
		user.DocumentType = *input.DocumentType
	}
	if input.Document != nil {
		user.Document = *input.Document
	}
	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if input.Password != nil && *input.Password != "" {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, *user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

// Delete removes a user record.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("user id is required")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}
