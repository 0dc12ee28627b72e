package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lianxu-dev/user-center/internal/dto"
	apperrors "github.com/lianxu-dev/user-center/internal/errors"
	"github.com/lianxu-dev/user-center/pkg/cache"
)

func newUserFixture() (*UserService, *fakeUserStore, *SessionCache) {
	users := newFakeUserStore()
	sessions := NewSessionCache(cache.NewStore(), time.Hour)
	return NewUserService(users, sessions), users, sessions
}

func TestUserGetByID(t *testing.T) {
	svc, users, _ := newUserFixture()
	ctx := context.Background()

	user := testUser("13800138000")
	user.Password = "hashed:secret1"
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	profile, err := svc.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if profile.Phone != user.Phone {
		t.Errorf("Expected phone %s, got %s", user.Phone, profile.Phone)
	}
}

func TestUserGetByIDUnknown(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.GetByID(context.Background(), 42)
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestUserUpdateFields(t *testing.T) {
	svc, users, _ := newUserFixture()
	ctx := context.Background()

	user := testUser("13800138000")
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	profile, err := svc.Update(ctx, user.ID, &dto.UpdateUserRequest{
		Username: "newname",
		Avatar:   "https://cdn.example.com/a.png",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if profile.Username != "newname" {
		t.Errorf("Expected username newname, got %s", profile.Username)
	}
	if profile.Avatar != "https://cdn.example.com/a.png" {
		t.Errorf("Expected avatar to update, got %s", profile.Avatar)
	}
	// The account key never changes through profile updates
	if profile.Phone != "13800138000" {
		t.Errorf("Expected phone unchanged, got %s", profile.Phone)
	}
}

func TestUserUpdateRefreshesSession(t *testing.T) {
	svc, users, sessions := newUserFixture()
	ctx := context.Background()

	user := testUser("13800138000")
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := sessions.Put(ctx, user); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	if _, err := svc.Update(ctx, user.ID, &dto.UpdateUserRequest{Email: "new@example.com"}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	cached, err := sessions.Get(ctx, user.Phone)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if cached == nil {
		t.Fatal("Expected session to survive update")
	}
	if cached.Email != "new@example.com" {
		t.Errorf("Expected refreshed session email, got %s", cached.Email)
	}
}

func TestUserUpdateWithoutSession(t *testing.T) {
	svc, users, sessions := newUserFixture()
	ctx := context.Background()

	user := testUser("13800138000")
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.Update(ctx, user.ID, &dto.UpdateUserRequest{Username: "x"}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	// An update does not log the user in
	has, _ := sessions.Contains(ctx, user.Phone)
	if has {
		t.Error("Expected no session to appear from a profile update")
	}
}
