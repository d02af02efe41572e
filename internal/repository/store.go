package repository

import (
	"context"

	"gorm.io/gorm"
)

// GormStore is a GORM implementation of Store
type GormStore struct {
	db    *gorm.DB
	users UserRepository
	tasks TaskRepository
}

// NewStore creates a Store whose repositories share db
func NewStore(db *gorm.DB) Store {
	return &GormStore{
		db:    db,
		users: NewUserRepository(db),
		tasks: NewTaskRepository(db),
	}
}

func (s *GormStore) Users() UserRepository { return s.users }

func (s *GormStore) Tasks() TaskRepository { return s.tasks }

// Transaction runs fn inside a database transaction. Nested calls reuse the
// surrounding transaction through a savepoint.
func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
