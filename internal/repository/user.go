package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lianxu-dev/user-center/internal/model"
	ctxutil "github.com/lianxu-dev/user-center/pkg/context"
	"github.com/lianxu-dev/user-center/pkg/logger"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByPhone looks up a user by phone, the canonical authentication key.
// Returns (nil, nil) when no such user exists.
func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "FindByPhone")

	logger.DebugWithContext(ctx, "Getting user by phone").
		String("phone", phone).
		Log()

	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			logger.DebugWithContext(ctx, "User not found by phone").
				String("phone", phone).
				Duration(duration).
				Log()
			return nil, nil
		}
		logger.ErrorWithContext(ctx, "Failed to get user by phone").
			String("phone", phone).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved successfully").
		String("phone", phone).
		Uint("user_id", user.ID).
		Duration(duration).
		Log()

	return &user, nil
}

// GetByID looks up a user by primary key. Returns (nil, nil) when absent.
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "GetByID")

	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.ErrorWithContext(ctx, "Failed to get user by ID").
			Uint("user_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved successfully").
		Uint("user_id", id).
		Duration(duration).
		Log()

	return &user, nil
}

// Create persists a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "Create")

	logger.DebugWithContext(ctx, "Creating new user").
		String("phone", user.Phone).
		String("email", user.Email).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Create(user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("phone", user.Phone).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "User created successfully").
		String("phone", user.Phone).
		Uint("user_id", user.ID).
		Duration(duration).
		Log()

	return nil
}

// Update applies profile field changes to a user
func (r *UserRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "Update")

	logger.DebugWithContext(ctx, "Updating user").
		Uint("user_id", id).
		Int("field_count", len(fields)).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update user").
			Uint("user_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No user found to update").
			Uint("user_id", id).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "User updated successfully").
		Uint("user_id", id).
		Int64("rows_affected", result.RowsAffected).
		Duration(duration).
		Log()

	return nil
}
