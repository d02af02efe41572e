package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/tasks-api/internal/models"
	"github.com/yukikurage/tasks-api/internal/repository"
	"go.uber.org/zap"
)

// UserService handles the user lifecycle: creation with reactivation of
// soft-deleted rows, active-only lookups, updates and soft deletes.
type UserService struct {
	store repository.Store
	log   *zap.Logger
	now   func() time.Time
}

// NewUserService creates a new UserService
func NewUserService(store repository.Store, log *zap.Logger) *UserService {
	return &UserService{
		store: store,
		log:   log.Named("user_service"),
		now:   time.Now,
	}
}

// WithClock returns a copy that reads the current time from now.
func (s *UserService) WithClock(now func() time.Time) *UserService {
	c := *s
	c.now = now
	return &c
}

// WithStore returns a copy bound to store, typically a transaction.
func (s *UserService) WithStore(store repository.Store) *UserService {
	c := *s
	c.store = store
	return &c
}

// UserInput carries the writable user fields
type UserInput struct {
	Username string
	FullName string
	Email    string
}

// Create stores a new user. A soft-deleted user matching the username, or
// failing that the email, is reactivated instead and keeps its id.
func (s *UserService) Create(ctx context.Context, input UserInput) (*models.User, error) {
	s.log.Info("Creating user", zap.String("username", input.Username))

	var result *models.User
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		users := tx.Users()
		now := s.now()

		existing, err := users.FindByUsername(ctx, input.Username)
		switch {
		case err == nil:
			if existing.IsActive() {
				s.log.Warn("Username already in use", zap.String("username", input.Username))
				return &AlreadyExistsError{Field: "username", Value: input.Username}
			}
			existing.Active = models.Active
			existing.Email = input.Email
			existing.FullName = input.FullName
			existing.UpdatedAt = now
			if err := users.Save(ctx, existing); err != nil {
				return conflictOr(err, input, "failed to reactivate user")
			}
			s.log.Info("Reactivated soft-deleted user by username",
				zap.Uint64("user_id", existing.ID), zap.String("username", input.Username))
			result = existing
			return nil
		case !errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("failed to check username: %w", err)
		}

		existing, err = users.FindByEmail(ctx, input.Email)
		switch {
		case err == nil:
			if existing.IsActive() {
				s.log.Warn("Email already in use by another active user", zap.String("email", input.Email))
				return &AlreadyExistsError{Field: "email", Value: input.Email}
			}
			existing.Active = models.Active
			existing.Username = input.Username
			existing.FullName = input.FullName
			existing.UpdatedAt = now
			if err := users.Save(ctx, existing); err != nil {
				return conflictOr(err, input, "failed to reactivate user")
			}
			s.log.Info("Reactivated soft-deleted user by email",
				zap.Uint64("user_id", existing.ID), zap.String("email", input.Email))
			result = existing
			return nil
		case !errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("failed to check email: %w", err)
		}

		user := &models.User{
			Username:  input.Username,
			FullName:  input.FullName,
			Email:     input.Email,
			Active:    models.Active,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := users.Create(ctx, user); err != nil {
			return conflictOr(err, input, "failed to create user")
		}
		s.log.Info("User created", zap.Uint64("user_id", user.ID))
		result = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// List returns every user when includeInactive is set, otherwise only
// active ones.
func (s *UserService) List(ctx context.Context, includeInactive bool) ([]models.User, error) {
	s.log.Debug("Listing users", zap.Bool("include_inactive", includeInactive))

	users, err := s.store.Users().List(ctx, !includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByID returns an active user
func (s *UserService) GetByID(ctx context.Context, id uint64) (*models.User, error) {
	s.log.Debug("Fetching active user by id", zap.Uint64("user_id", id))

	user, err := s.store.Users().FindActiveByID(ctx, id)
	return s.activeLookup(user, err, "id", id)
}

// GetByUsername returns an active user
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.log.Debug("Fetching active user by username", zap.String("username", username))

	user, err := s.store.Users().FindActiveByUsername(ctx, username)
	return s.activeLookup(user, err, "username", username)
}

// GetByEmail returns an active user
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.log.Debug("Fetching active user by email", zap.String("email", email))

	user, err := s.store.Users().FindActiveByEmail(ctx, email)
	return s.activeLookup(user, err, "email", email)
}

// ExistsActiveByID reports whether an active user with id exists
func (s *UserService) ExistsActiveByID(ctx context.Context, id uint64) (bool, error) {
	_, err := s.store.Users().FindActiveByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to find user: %w", err)
	}
	return true, nil
}

// Update overwrites username, email and full name of a user in any state.
// A changed username or email must not be taken by any other row, active
// or not.
func (s *UserService) Update(ctx context.Context, id uint64, input UserInput) (*models.User, error) {
	s.log.Info("Updating user", zap.Uint64("user_id", id))

	var result *models.User
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		users := tx.Users()

		user, err := users.FindByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return userNotFound("id", id)
		}
		if err != nil {
			return fmt.Errorf("failed to find user: %w", err)
		}

		if user.Username != input.Username {
			taken, err := users.ExistsByUsername(ctx, input.Username)
			if err != nil {
				return fmt.Errorf("failed to check username: %w", err)
			}
			if taken {
				s.log.Warn("Username already in use", zap.String("username", input.Username))
				return &AlreadyExistsError{Field: "username", Value: input.Username}
			}
		}
		if user.Email != input.Email {
			taken, err := users.ExistsByEmail(ctx, input.Email)
			if err != nil {
				return fmt.Errorf("failed to check email: %w", err)
			}
			if taken {
				s.log.Warn("Email already in use", zap.String("email", input.Email))
				return &AlreadyExistsError{Field: "email", Value: input.Email}
			}
		}

		user.Username = input.Username
		user.Email = input.Email
		user.FullName = input.FullName
		user.UpdatedAt = s.now()
		if err := users.Save(ctx, user); err != nil {
			return conflictOr(err, input, "failed to update user")
		}

		result = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("User updated", zap.Uint64("user_id", id))
	return result, nil
}

// SoftDelete marks a user inactive. The row and its tasks are kept.
func (s *UserService) SoftDelete(ctx context.Context, id uint64) error {
	s.log.Info("Soft deleting user", zap.Uint64("user_id", id))

	return s.store.Transaction(ctx, func(tx repository.Store) error {
		users := tx.Users()

		user, err := users.FindByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("User not found for deletion", zap.Uint64("user_id", id))
			return userNotFound("id", id)
		}
		if err != nil {
			return fmt.Errorf("failed to find user: %w", err)
		}

		if !user.IsActive() {
			s.log.Warn("User is already inactive", zap.Uint64("user_id", id))
			return ErrUserInactive
		}

		user.Active = models.Inactive
		user.UpdatedAt = s.now()
		if err := users.Save(ctx, user); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		s.log.Info("User soft deleted", zap.Uint64("user_id", id))
		return nil
	})
}

func (s *UserService) activeLookup(user *models.User, err error, field string, value interface{}) (*models.User, error) {
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Debug("Active user not found", zap.String("field", field), zap.Any("value", value))
		return nil, userNotFound(field, value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// conflictOr maps a unique-constraint violation raced past the existence
// checks to AlreadyExistsError and wraps anything else.
func conflictOr(err error, input UserInput, msg string) error {
	var dup *repository.DuplicateError
	if errors.As(err, &dup) {
		switch dup.Field {
		case "username":
			return &AlreadyExistsError{Field: "username", Value: input.Username}
		case "email":
			return &AlreadyExistsError{Field: "email", Value: input.Email}
		}
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return &AlreadyExistsError{}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
