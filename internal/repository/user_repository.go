package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/tasks-api/internal/database"
	"github.com/yukikurage/tasks-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return mapError(r.db.WithContext(ctx).Create(user).Error)
}

// Save updates every column of an existing user
func (r *GormUserRepository) Save(ctx context.Context, user *models.User) error {
	return mapError(r.db.WithContext(ctx).Save(user).Error)
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	return r.first(ctx, "user_id = ?", id)
}

func (r *GormUserRepository) FindActiveByID(ctx context.Context, id uint64) (*models.User, error) {
	return r.first(ctx, "user_id = ? AND is_active = ?", id, models.Active)
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *GormUserRepository) FindActiveByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "username = ? AND is_active = ?", username, models.Active)
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *GormUserRepository) FindActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ? AND is_active = ?", email, models.Active)
}

// ExistsByUsername checks all rows, active or not
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

// ExistsByEmail checks all rows, active or not
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

// List returns users ordered by id, optionally only active ones
func (r *GormUserRepository) List(ctx context.Context, activeOnly bool) ([]models.User, error) {
	users := []models.User{}
	query := r.db.WithContext(ctx).Model(&models.User{})
	if activeOnly {
		query = query.Where("is_active = ?", models.Active)
	}
	if err := query.Order("user_id").Find(&users).Error; err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

func (r *GormUserRepository) first(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (r *GormUserRepository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, mapError(err)
	}
	return count > 0, nil
}

// mapError converts gorm and driver errors into repository errors.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case database.IsUniqueViolation(err):
		return &DuplicateError{Field: uniqueField(err), Err: err}
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", ErrForeignKey, err)
	default:
		return err
	}
}

// uniqueField maps the violated constraint back to the user column.
func uniqueField(err error) string {
	constraint := database.ViolatedConstraint(err)
	switch {
	case strings.Contains(constraint, "username"):
		return "username"
	case strings.Contains(constraint, "email"):
		return "email"
	default:
		return ""
	}
}
