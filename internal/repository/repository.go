package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/tasks-api/internal/models"
	"github.com/yukikurage/tasks-api/internal/utils"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("record already exists")
	// ErrForeignKey is returned when a write references a missing row.
	ErrForeignKey = errors.New("referenced record does not exist")
)

// DuplicateError is returned for unique-constraint violations. Field names
// the user column involved when the driver reports it. It matches
// ErrDuplicate with errors.Is.
type DuplicateError struct {
	Field string
	Err   error
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%v: %v", ErrDuplicate, e.Err)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

func (e *DuplicateError) Unwrap() error { return e.Err }

// UserRepository defines the interface for user data access.
// Find* methods ignore the active flag; FindActive* only return active users.
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, user *models.User) error

	// Save updates every column of an existing user
	Save(ctx context.Context, user *models.User) error

	FindByID(ctx context.Context, id uint64) (*models.User, error)
	FindActiveByID(ctx context.Context, id uint64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindActiveByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindActiveByEmail(ctx context.Context, email string) (*models.User, error)

	// ExistsByUsername checks all rows, active or not
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail checks all rows, active or not
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns users ordered by id, optionally only active ones
	List(ctx context.Context, activeOnly bool) ([]models.User, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a new task
	Create(ctx context.Context, task *models.Task) error

	// Save updates every column of an existing task
	Save(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// Delete removes the task row
	Delete(ctx context.Context, id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	UserID *uint64
	Paging utils.PaginationParams
}

// Store groups the repositories that must share a transaction.
type Store interface {
	Users() UserRepository
	Tasks() TaskRepository

	// Transaction runs fn with a Store bound to a single database
	// transaction. The transaction commits when fn returns nil.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
