package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rosterd/rosterd/internal/auth"
	"github.com/rosterd/rosterd/internal/model"
	"github.com/rosterd/rosterd/internal/repository"
)

// UserRepository is the persistence surface the service depends on.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	FindUserByID(ctx context.Context, id string) (*model.User, bool, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, bool, error)
}

// UserService handles user business logic.
type UserService struct {
	repo UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// CreateUserInput defines input for creating a user.
type CreateUserInput struct {
	Email    string
	Password string
}

// CreateUser creates a new user after checking email uniqueness.
//
// The pre-check gives an attributable conflict for the common case; the
// store's unique index remains the authority when two creates race, so
// a constraint violation on insert maps to the same conflict.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	_, exists, err := s.repo.FindUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, internal("Failed to create user.", err)
	}
	if exists {
		return nil, conflict("User with this email already exists.")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, internal("Failed to create user.", err)
	}

	stored, err := s.repo.CreateUser(ctx, model.NewUser(input.Email, hash))
	if err != nil {
		var storageErr *repository.StorageError
		if errors.As(err, &storageErr) {
			switch storageErr.Kind {
			case repository.KindUniqueViolation:
				// Pre-check race loser: the constraint caught it.
				return nil, conflict("User with this email already exists.")
			case repository.KindUnknown:
				return nil, internal("Failed to create user.", err)
			}
		}
		return nil, internal("Failed to create user.", err)
	}

	return stored, nil
}

// GetUser retrieves a user by ID. The ID must be a UUID; a malformed ID
// fails before the repository is contacted. Absence is reported through
// the bool, never as an error.
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false, invalid("Invalid user ID format.")
	}

	user, found, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		return nil, false, internal("Failed to fetch user.", err)
	}

	return user, found, nil
}
