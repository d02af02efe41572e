package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// TaskStatuses lists every accepted status value.
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uint64     `gorm:"primaryKey;column:task_id" json:"taskId"`
	Title       string     `gorm:"type:varchar(100);not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;index:idx_tasks_status" json:"status"`
	UserID      uint64     `gorm:"column:user_id;not null;index:idx_tasks_user_id" json:"userId"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false;not null" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime:false;not null" json:"updatedAt"`
}
