package service

import (
	"context"
	"time"

	"github.com/lianxu-dev/user-center/internal/model"
)

// KVStore is the cache backend contract: atomic single-key string operations
// backed by Redis in production and by pkg/cache in tests or when Redis is
// disabled.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	CompareAndDelete(ctx context.Context, key, expected string) (bool, error)
}

// UserStore is the credential-store collaborator: user lookup and
// persistence, implemented by repository.UserRepository.
type UserStore interface {
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
}

// PasswordHasher is the one-way password hashing collaborator.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Matches(plaintext, hash string) bool
}

// CodeSender delivers verification codes to their destination address.
// Transport (SMTP, SMS gateway) lives outside this core.
type CodeSender interface {
	SendEmailCode(ctx context.Context, email, code string, ttl time.Duration) error
	SendPhoneCode(ctx context.Context, phone, code string, ttl time.Duration) error
}
