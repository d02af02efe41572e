package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/tasks-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

func TestUserRepository_Postgres_UniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uk_users_email"})
	mock.ExpectRollback()

	now := time.Now()
	err := repo.Create(context.Background(), &models.User{
		Username:  "alice01",
		FullName:  "Alice",
		Email:     "alice@example.com",
		Active:    models.Active,
		CreatedAt: now,
		UpdatedAt: now,
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Postgres_ForeignKeyViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "tasks"`).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	now := time.Now()
	err := repo.Create(context.Background(), &models.Task{
		Title:     "orphan",
		Status:    models.TaskStatusTodo,
		UserID:    42,
		CreatedAt: now,
		UpdatedAt: now,
	})
	assert.ErrorIs(t, err, ErrForeignKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Postgres_QueryFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	failure := errors.New("connection refused")
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).WillReturnError(failure)

	_, err := repo.ExistsByUsername(context.Background(), "alice01")
	assert.ErrorIs(t, err, failure)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Postgres_FindActiveByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"user_id", "username", "full_name", "email", "is_active", "created_at", "updated_at"}).
		AddRow(7, "alice01", "Alice", "alice@example.com", "Y", now, now)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE user_id = \$1 AND is_active = \$2`).
		WillReturnRows(rows)

	user, err := repo.FindActiveByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), user.ID)
	assert.True(t, user.IsActive())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Postgres_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
