package service

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/lianxu-dev/user-center/internal/constants"
)

// VerificationCodeService manages single-use codes keyed by destination
// address (email or phone). At most one live code exists per address; a new
// issue overwrites the prior one.
type VerificationCodeService struct {
	store KVStore
	ttl   time.Duration
}

func NewVerificationCodeService(store KVStore, ttl time.Duration) *VerificationCodeService {
	return &VerificationCodeService{
		store: store,
		ttl:   ttl,
	}
}

func (s *VerificationCodeService) key(address string) string {
	return constants.CacheKeyVerificationCode + address
}

// TTL returns the configured code lifetime
func (s *VerificationCodeService) TTL() time.Duration {
	return s.ttl
}

// Issue generates a 6-digit code for the address and stores it with the
// configured TTL. SMS gateways only accept digits, and the first digit is
// never zero.
func (s *VerificationCodeService) Issue(ctx context.Context, address string) (string, error) {
	code := strconv.Itoa(rand.Intn(900000) + 100000)

	if err := s.store.Set(ctx, s.key(address), code, s.ttl); err != nil {
		return "", err
	}

	return code, nil
}

// Verify consumes the stored code for the address when it matches the input.
// A failed match leaves the code in place so the caller may retry until the
// TTL expires.
func (s *VerificationCodeService) Verify(ctx context.Context, code, address string) (bool, error) {
	return s.store.CompareAndDelete(ctx, s.key(address), code)
}
