package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lianxu-dev/user-center/internal/dto"
	apperrors "github.com/lianxu-dev/user-center/internal/errors"
	"github.com/lianxu-dev/user-center/internal/model"
	ctxutil "github.com/lianxu-dev/user-center/pkg/context"
	"github.com/lianxu-dev/user-center/pkg/logger"
)

// UserService exposes profile reads and updates for authenticated users.
type UserService struct {
	users    UserStore
	sessions *SessionCache
}

func NewUserService(users UserStore, sessions *SessionCache) *UserService {
	return &UserService{
		users:    users,
		sessions: sessions,
	}
}

func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Avatar:    user.Avatar,
		UserRole:  user.UserRole,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// GetByID returns the outward profile for an account.
func (s *UserService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "user_service", "GetByID")

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Update applies the mutable profile fields. The phone number is the account
// key and never changes here. A live session is refreshed with the new
// profile so later requests see it without a database round trip.
func (s *UserService) Update(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "user_service", "Update")

	fields := map[string]interface{}{}
	if req.Username != "" {
		fields["username"] = req.Username
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.Avatar != "" {
		fields["avatar"] = req.Avatar
	}

	if len(fields) > 0 {
		if err := s.users.Update(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			logger.ErrorWithContext(ctx, "Failed to update user").
				Uint("user_id", id).
				Err(err).
				Log()
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if has, _ := s.sessions.Contains(ctx, user.Phone); has {
		if err := s.sessions.Put(ctx, user); err != nil {
			logger.WarnWithContext(ctx, "Failed to refresh session after profile update").
				String("phone", user.Phone).
				Err(err).
				Log()
		}
	}

	return toUserResponse(user), nil
}
