package service

import (
	"context"
	"testing"
	"time"

	"github.com/lianxu-dev/user-center/internal/constants"
	"github.com/lianxu-dev/user-center/pkg/cache"
)

func TestSessionPutGet(t *testing.T) {
	sessions := NewSessionCache(cache.NewStore(), time.Hour)
	ctx := context.Background()
	user := testUser("13800138000")

	if err := sessions.Put(ctx, user); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, err := sessions.Get(ctx, user.Phone)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got == nil {
		t.Fatal("Expected cached user")
	}
	if got.Phone != user.Phone {
		t.Errorf("Expected phone %s, got %s", user.Phone, got.Phone)
	}
	if got.Email != user.Email {
		t.Errorf("Expected email %s, got %s", user.Email, got.Email)
	}
}

func TestSessionMiss(t *testing.T) {
	sessions := NewSessionCache(cache.NewStore(), time.Hour)

	got, err := sessions.Get(context.Background(), "13800138000")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil on miss, got %+v", got)
	}
}

func TestSessionContains(t *testing.T) {
	sessions := NewSessionCache(cache.NewStore(), time.Hour)
	ctx := context.Background()
	user := testUser("13800138000")

	has, err := sessions.Contains(ctx, user.Phone)
	if err != nil {
		t.Fatalf("Contains returned error: %v", err)
	}
	if has {
		t.Error("Expected empty cache to report no session")
	}

	if err := sessions.Put(ctx, user); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	has, err = sessions.Contains(ctx, user.Phone)
	if err != nil {
		t.Fatalf("Contains returned error: %v", err)
	}
	if !has {
		t.Error("Expected session after Put")
	}
}

func TestSessionInvalidate(t *testing.T) {
	sessions := NewSessionCache(cache.NewStore(), time.Hour)
	ctx := context.Background()
	user := testUser("13800138000")

	if err := sessions.Put(ctx, user); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := sessions.Invalidate(ctx, user.Phone); err != nil {
		t.Fatalf("Invalidate returned error: %v", err)
	}

	has, err := sessions.Contains(ctx, user.Phone)
	if err != nil {
		t.Fatalf("Contains returned error: %v", err)
	}
	if has {
		t.Error("Expected no session after Invalidate")
	}

	// Invalidating again is a no-op
	if err := sessions.Invalidate(ctx, user.Phone); err != nil {
		t.Errorf("Expected repeated Invalidate to succeed, got %v", err)
	}
}

func TestSessionCorruptEntryTreatedAsMiss(t *testing.T) {
	store := cache.NewStore()
	sessions := NewSessionCache(store, time.Hour)
	ctx := context.Background()

	key := constants.CacheKeyUser + "13800138000"
	if err := store.Set(ctx, key, "{not json", time.Hour); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, err := sessions.Get(ctx, "13800138000")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != nil {
		t.Errorf("Expected corrupt entry to read as miss, got %+v", got)
	}

	// The broken entry is dropped so later writes start clean
	if _, found, _ := store.Get(ctx, key); found {
		t.Error("Expected corrupt entry to be deleted")
	}
}

func TestSessionExpires(t *testing.T) {
	sessions := NewSessionCache(cache.NewStore(), 10*time.Millisecond)
	ctx := context.Background()
	user := testUser("13800138000")

	if err := sessions.Put(ctx, user); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	has, err := sessions.Contains(ctx, user.Phone)
	if err != nil {
		t.Fatalf("Contains returned error: %v", err)
	}
	if has {
		t.Error("Expected session to expire")
	}
}
