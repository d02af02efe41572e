package dto

import (
	"time"

	"github.com/yukikurage/tasks-api/internal/models"
	"github.com/yukikurage/tasks-api/internal/validation"
)

// CreateTaskRequest is the body of POST /api/tasks
type CreateTaskRequest struct {
	UserID      *uint64 `json:"userId"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// Validate returns validation.Violations when a rule fails
func (r CreateTaskRequest) Validate() error {
	v := validation.CheckID("userId", r.UserID, true, "User ID is required")
	v = append(v, validation.Validate(validation.TaskCreateRules, map[string]*string{
		"title":       r.Title,
		"description": r.Description,
		"status":      r.Status,
	})...)
	return v.Err()
}

// UpdateTaskRequest is the body of PUT /api/tasks/{id}. Omitted or null
// fields keep their stored value.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	UserID      *uint64 `json:"userId"`
}

// Validate returns validation.Violations when a rule fails
func (r UpdateTaskRequest) Validate() error {
	v := validation.Validate(validation.TaskUpdateRules, map[string]*string{
		"title":       r.Title,
		"description": r.Description,
		"status":      r.Status,
	})
	v = append(v, validation.CheckID("userId", r.UserID, false, "")...)
	return v.Err()
}

// TaskDTO represents a task in API responses. The owner is exposed by id
// only.
type TaskDTO struct {
	ID          uint64            `json:"taskId"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      models.TaskStatus `json:"status"`
	UserID      uint64            `json:"userId"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		out[i] = ToTaskDTO(task)
	}
	return out
}
