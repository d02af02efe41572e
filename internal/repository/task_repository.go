package repository

import (
	"context"

	"github.com/yukikurage/tasks-api/internal/database"
	"github.com/yukikurage/tasks-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return mapError(r.db.WithContext(ctx).Create(task).Error)
}

// Save updates every column of an existing task
func (r *GormTaskRepository) Save(ctx context.Context, task *models.Task) error {
	return mapError(r.db.WithContext(ctx).Save(task).Error)
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Where("task_id = ?", id).First(&task).Error; err != nil {
		return nil, mapError(err)
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error) {
	tasks := []models.Task{}

	query := r.db.WithContext(ctx).Model(&models.Task{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, mapError(err)
	}
	if total == 0 {
		return tasks, 0, nil
	}

	err := query.
		Scopes(database.OrderBy(filter.Paging.Sort), database.Paginate(filter.Paging)).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, mapError(err)
	}

	return tasks, total, nil
}

// Delete removes the task row
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Where("task_id = ?", id).Delete(&models.Task{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
