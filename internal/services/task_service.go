package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/tasks-api/internal/models"
	"github.com/yukikurage/tasks-api/internal/repository"
	"github.com/yukikurage/tasks-api/internal/utils"
	"go.uber.org/zap"
)

// Page is one slice of a paged listing. Number is zero-based.
type Page[T any] struct {
	Items  []T
	Number int
	Size   int
	Total  int64
}

// TotalPages returns the number of pages needed for Total items
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

// TaskService handles task business logic. Owners are resolved through
// UserService so only active users can own new or reassigned tasks.
type TaskService struct {
	store repository.Store
	users *UserService
	log   *zap.Logger
	now   func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(store repository.Store, users *UserService, log *zap.Logger) *TaskService {
	return &TaskService{
		store: store,
		users: users,
		log:   log.Named("task_service"),
		now:   time.Now,
	}
}

// WithClock returns a copy that reads the current time from now.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	c := *s
	c.now = now
	return &c
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	UserID      uint64
	Title       string
	Description *string
	Status      *models.TaskStatus
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	UserID      *uint64
}

// Create stores a new task owned by an active user. Status defaults to TODO.
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	s.log.Debug("Creating task", zap.Uint64("user_id", input.UserID))

	status := models.TaskStatusTodo
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidTaskStatus
		}
		status = *input.Status
	}

	var task *models.Task
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		owner, err := s.users.WithStore(tx).GetByID(ctx, input.UserID)
		if err != nil {
			return err
		}

		now := s.now()
		task = &models.Task{
			Title:       input.Title,
			Description: input.Description,
			Status:      status,
			UserID:      owner.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Tasks().Create(ctx, task); err != nil {
			if errors.Is(err, repository.ErrForeignKey) {
				return userNotFound("id", input.UserID)
			}
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Task created", zap.Uint64("task_id", task.ID), zap.Uint64("user_id", task.UserID))
	return task, nil
}

// Get returns a single task
func (s *TaskService) Get(ctx context.Context, id uint64) (*models.Task, error) {
	task, err := s.store.Tasks().FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, taskNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListAll returns one page of every task
func (s *TaskService) ListAll(ctx context.Context, paging utils.PaginationParams) (Page[models.Task], error) {
	s.log.Debug("Listing all tasks", zap.Int("page", paging.Page), zap.Int("size", paging.Size))
	return s.list(ctx, repository.TaskFilter{Paging: paging})
}

// ListByUser returns one page of the tasks owned by an active user
func (s *TaskService) ListByUser(ctx context.Context, userID uint64, paging utils.PaginationParams) (Page[models.Task], error) {
	s.log.Debug("Listing tasks for user", zap.Uint64("user_id", userID))

	exists, err := s.users.ExistsActiveByID(ctx, userID)
	if err != nil {
		return Page[models.Task]{}, err
	}
	if !exists {
		s.log.Warn("User not found", zap.Uint64("user_id", userID))
		return Page[models.Task]{}, userNotFound("id", userID)
	}

	return s.list(ctx, repository.TaskFilter{UserID: &userID, Paging: paging})
}

// Update applies the non-nil fields of input. A new owner must be an
// active user.
func (s *TaskService) Update(ctx context.Context, id uint64, input UpdateTaskInput) (*models.Task, error) {
	s.log.Info("Updating task", zap.Uint64("task_id", id))

	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	var task *models.Task
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		task, err = tx.Tasks().FindByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return taskNotFound(id)
		}
		if err != nil {
			return fmt.Errorf("failed to find task: %w", err)
		}

		if input.UserID != nil {
			owner, err := s.users.WithStore(tx).GetByID(ctx, *input.UserID)
			if err != nil {
				return err
			}
			task.UserID = owner.ID
		}
		if input.Title != nil {
			task.Title = *input.Title
		}
		if input.Description != nil {
			task.Description = input.Description
		}
		if input.Status != nil {
			task.Status = *input.Status
		}
		task.UpdatedAt = s.now()

		if err := tx.Tasks().Save(ctx, task); err != nil {
			if errors.Is(err, repository.ErrForeignKey) {
				return userNotFound("id", task.UserID)
			}
			return fmt.Errorf("failed to update task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// Delete permanently removes a task
func (s *TaskService) Delete(ctx context.Context, id uint64) error {
	s.log.Debug("Deleting task", zap.Uint64("task_id", id))

	return s.store.Transaction(ctx, func(tx repository.Store) error {
		err := tx.Tasks().Delete(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("Task not found", zap.Uint64("task_id", id))
			return taskNotFound(id)
		}
		if err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		s.log.Info("Task deleted", zap.Uint64("task_id", id))
		return nil
	})
}

func (s *TaskService) list(ctx context.Context, filter repository.TaskFilter) (Page[models.Task], error) {
	tasks, total, err := s.store.Tasks().List(ctx, filter)
	if err != nil {
		return Page[models.Task]{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	return Page[models.Task]{
		Items:  tasks,
		Number: filter.Paging.Page,
		Size:   filter.Paging.Size,
		Total:  total,
	}, nil
}
