package database

import (
	"fmt"

	"github.com/yukikurage/tasks-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the users and tasks tables, then makes sure the
// lookup indexes exist.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}

// AddIndexes creates the performance-critical indexes that are missing, for
// databases whose tables predate the current models.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model interface{}
		name  string
	}{
		{&models.Task{}, "idx_tasks_user_id"},
		{&models.Task{}, "idx_tasks_status"},
		{&models.User{}, "idx_users_is_active"},
		{&models.User{}, "uk_users_username"},
		{&models.User{}, "uk_users_email"},
	}

	m := db.Migrator()
	for _, idx := range indexes {
		if m.HasIndex(idx.model, idx.name) {
			continue
		}
		if err := m.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
