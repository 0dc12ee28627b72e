package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lianxu-dev/user-center/internal/constants"
	"github.com/lianxu-dev/user-center/internal/model"
	"github.com/lianxu-dev/user-center/pkg/logger"
)

// SessionCache holds the last known good user record per phone. Presence of
// an entry is what the authentication gate treats as "currently
// authenticated", so invalidating an entry revokes all outstanding tokens
// for that phone.
type SessionCache struct {
	store KVStore
	ttl   time.Duration
}

func NewSessionCache(store KVStore, ttl time.Duration) *SessionCache {
	return &SessionCache{
		store: store,
		ttl:   ttl,
	}
}

func (c *SessionCache) key(phone string) string {
	return constants.CacheKeyUser + phone
}

// Put upserts the cached record for the user's phone
func (c *SessionCache) Put(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.key(user.Phone), string(data), c.ttl)
}

// Get returns the cached user or (nil, nil) on a miss
func (c *SessionCache) Get(ctx context.Context, phone string) (*model.User, error) {
	data, found, err := c.store.Get(ctx, c.key(phone))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var user model.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		// A corrupt entry is dropped and treated as a miss
		logger.WarnWithContext(ctx, "Dropping unreadable session cache entry").
			String("phone", phone).
			Err(err).
			Log()
		_ = c.store.Delete(ctx, c.key(phone))
		return nil, nil
	}

	return &user, nil
}

// Contains reports whether a session entry exists for the phone
func (c *SessionCache) Contains(ctx context.Context, phone string) (bool, error) {
	return c.store.Exists(ctx, c.key(phone))
}

// Invalidate removes the session entry, revoking outstanding tokens for the
// phone
func (c *SessionCache) Invalidate(ctx context.Context, phone string) error {
	return c.store.Delete(ctx, c.key(phone))
}
