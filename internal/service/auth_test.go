package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lianxu-dev/user-center/internal/dto"
	apperrors "github.com/lianxu-dev/user-center/internal/errors"
	"github.com/lianxu-dev/user-center/internal/model"
	"github.com/lianxu-dev/user-center/pkg/cache"
)

type fakeUserStore struct {
	byPhone     map[string]*model.User
	nextID      uint
	findCalls   int
	createCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byPhone: make(map[string]*model.User), nextID: 1}
}

func (f *fakeUserStore) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	f.findCalls++
	return f.byPhone[phone], nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uint) (*model.User, error) {
	for _, u := range f.byPhone {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	f.createCalls++
	user.ID = f.nextID
	f.nextID++
	f.byPhone[user.Phone] = user
	return nil
}

func (f *fakeUserStore) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	for _, u := range f.byPhone {
		if u.ID == id {
			if v, ok := fields["username"]; ok {
				u.Username = v.(string)
			}
			if v, ok := fields["email"]; ok {
				u.Email = v.(string)
			}
			if v, ok := fields["avatar"]; ok {
				u.Avatar = v.(string)
			}
			return nil
		}
	}
	return errors.New("not found")
}

type fakeHasher struct {
	matchCalls int
}

func (f *fakeHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func (f *fakeHasher) Matches(plaintext, hash string) bool {
	f.matchCalls++
	return hash == "hashed:"+plaintext
}

type fakeSender struct {
	emails []string
	phones []string
	codes  []string
	fail   bool
}

func (f *fakeSender) SendEmailCode(ctx context.Context, email, code string, ttl time.Duration) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.emails = append(f.emails, email)
	f.codes = append(f.codes, code)
	return nil
}

func (f *fakeSender) SendPhoneCode(ctx context.Context, phone, code string, ttl time.Duration) error {
	if f.fail {
		return errors.New("gateway down")
	}
	f.phones = append(f.phones, phone)
	f.codes = append(f.codes, code)
	return nil
}

type authFixture struct {
	svc      *AuthService
	users    *fakeUserStore
	sessions *SessionCache
	codes    *VerificationCodeService
	tokens   *TokenService
	hasher   *fakeHasher
	sender   *fakeSender
}

func newAuthFixture() *authFixture {
	store := cache.NewStore()
	users := newFakeUserStore()
	sessions := NewSessionCache(store, time.Hour)
	codes := NewVerificationCodeService(store, 5*time.Minute)
	tokens := NewTokenService("test-secret", 30*time.Minute)
	hasher := &fakeHasher{}
	sender := &fakeSender{}

	return &authFixture{
		svc:      NewAuthService(users, sessions, codes, tokens, hasher, sender),
		users:    users,
		sessions: sessions,
		codes:    codes,
		tokens:   tokens,
		hasher:   hasher,
		sender:   sender,
	}
}

func (f *authFixture) register(t *testing.T, phone, email, password string) string {
	t.Helper()
	ctx := context.Background()

	code, err := f.codes.Issue(ctx, email)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	token, err := f.svc.Register(ctx, &dto.RegisterRequest{
		Password: password,
		Email:    email,
		Phone:    phone,
		Code:     code,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return token
}

func TestRegisterSuccess(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	token := f.register(t, "13800138000", "a@example.com", "secret1")

	user := f.users.byPhone["13800138000"]
	if user == nil {
		t.Fatal("Expected user to be created")
	}
	if user.Password != "hashed:secret1" {
		t.Errorf("Expected hashed password, got %s", user.Password)
	}
	if user.Username != "13800138000" {
		t.Errorf("Expected phone as default username, got %s", user.Username)
	}

	decoded, err := f.tokens.Decode(token)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if decoded.Phone != "13800138000" {
		t.Errorf("Expected token subject 13800138000, got %s", decoded.Phone)
	}

	has, _ := f.sessions.Contains(ctx, "13800138000")
	if !has {
		t.Error("Expected session after registration")
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.register(t, "13800138000", "a@example.com", "secret1")

	code, _ := f.codes.Issue(ctx, "b@example.com")
	_, err := f.svc.Register(ctx, &dto.RegisterRequest{
		Password: "secret2",
		Email:    "b@example.com",
		Phone:    "13800138000",
		Code:     code,
	})
	if !errors.Is(err, apperrors.ErrUserAlreadyExists) {
		t.Errorf("Expected ErrUserAlreadyExists, got %v", err)
	}
	if f.users.createCalls != 1 {
		t.Errorf("Expected 1 create, got %d", f.users.createCalls)
	}
}

func TestRegisterWrongCode(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	if _, err := f.codes.Issue(ctx, "a@example.com"); err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err := f.svc.Register(ctx, &dto.RegisterRequest{
		Password: "secret1",
		Email:    "a@example.com",
		Phone:    "13800138000",
		Code:     "000000",
	})
	if !errors.Is(err, apperrors.ErrInvalidVerificationCode) {
		t.Errorf("Expected ErrInvalidVerificationCode, got %v", err)
	}
	if f.users.createCalls != 0 {
		t.Errorf("Expected no create, got %d", f.users.createCalls)
	}
}

func TestRegisterCodeConsumed(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	code, _ := f.codes.Issue(ctx, "a@example.com")
	if _, err := f.svc.Register(ctx, &dto.RegisterRequest{
		Password: "secret1",
		Email:    "a@example.com",
		Phone:    "13800138000",
		Code:     code,
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	// Reusing the consumed code for a second account fails
	_, err := f.svc.Register(ctx, &dto.RegisterRequest{
		Password: "secret2",
		Email:    "a@example.com",
		Phone:    "13900139000",
		Code:     code,
	})
	if !errors.Is(err, apperrors.ErrInvalidVerificationCode) {
		t.Errorf("Expected ErrInvalidVerificationCode, got %v", err)
	}
}

func TestLoginWithPassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.register(t, "13800138000", "a@example.com", "secret1")
	if err := f.svc.Logout(ctx, "13800138000"); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	token, err := f.svc.Login(ctx, &dto.LoginRequest{Phone: "13800138000", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if f.hasher.matchCalls != 1 {
		t.Errorf("Expected 1 password comparison, got %d", f.hasher.matchCalls)
	}

	decoded, err := f.tokens.Decode(token)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if decoded.Phone != "13800138000" {
		t.Errorf("Expected token subject 13800138000, got %s", decoded.Phone)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.register(t, "13800138000", "a@example.com", "secret1")
	if err := f.svc.Logout(ctx, "13800138000"); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	_, err := f.svc.Login(ctx, &dto.LoginRequest{Phone: "13800138000", Password: "wrong"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}

	has, _ := f.sessions.Contains(ctx, "13800138000")
	if has {
		t.Error("Expected no session after failed login")
	}
}

func TestLoginUnknownPhone(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Login(context.Background(), &dto.LoginRequest{Phone: "13800138000", Password: "secret1"})
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestLoginSessionHitSkipsPassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.register(t, "13800138000", "a@example.com", "secret1")
	f.users.findCalls = 0

	// With a live session the stored password is never consulted, so even a
	// wrong one yields a token.
	token, err := f.svc.Login(ctx, &dto.LoginRequest{Phone: "13800138000", Password: "wrong"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatal("Expected token")
	}
	if f.hasher.matchCalls != 0 {
		t.Errorf("Expected 0 password comparisons on session hit, got %d", f.hasher.matchCalls)
	}
	if f.users.findCalls != 0 {
		t.Errorf("Expected 0 database lookups on session hit, got %d", f.users.findCalls)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.register(t, "13800138000", "a@example.com", "secret1")

	if err := f.svc.Logout(ctx, "13800138000"); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	has, _ := f.sessions.Contains(ctx, "13800138000")
	if has {
		t.Error("Expected session to be gone after logout")
	}

	// Logout of an absent session is a no-op
	if err := f.svc.Logout(ctx, "13800138000"); err != nil {
		t.Errorf("Expected repeated logout to succeed, got %v", err)
	}
}

func TestSendEmailCodeDelivers(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	if err := f.svc.SendEmailCode(ctx, "a@example.com"); err != nil {
		t.Fatalf("SendEmailCode returned error: %v", err)
	}

	if len(f.sender.emails) != 1 || f.sender.emails[0] != "a@example.com" {
		t.Fatalf("Expected one delivery to a@example.com, got %v", f.sender.emails)
	}

	// The delivered code is the stored one
	ok, err := f.codes.Verify(ctx, f.sender.codes[0], "a@example.com")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !ok {
		t.Error("Expected delivered code to verify")
	}
}

func TestSendPhoneCodeDelivers(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	if err := f.svc.SendPhoneCode(ctx, "13800138000"); err != nil {
		t.Fatalf("SendPhoneCode returned error: %v", err)
	}

	if len(f.sender.phones) != 1 || f.sender.phones[0] != "13800138000" {
		t.Fatalf("Expected one delivery to 13800138000, got %v", f.sender.phones)
	}
}

func TestSendCodeDeliveryFailure(t *testing.T) {
	f := newAuthFixture()
	f.sender.fail = true

	err := f.svc.SendEmailCode(context.Background(), "a@example.com")
	if !errors.Is(err, apperrors.ErrServiceUnavailable) {
		t.Errorf("Expected ErrServiceUnavailable, got %v", err)
	}
}

func TestVerifyEmailCode(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	code, err := f.codes.Issue(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if err := f.svc.VerifyEmailCode(ctx, code, "a@example.com"); err != nil {
		t.Errorf("Expected verification to succeed, got %v", err)
	}

	err = f.svc.VerifyEmailCode(ctx, code, "a@example.com")
	if !errors.Is(err, apperrors.ErrInvalidVerificationCode) {
		t.Errorf("Expected ErrInvalidVerificationCode on reuse, got %v", err)
	}
}

func TestConcurrentLogins(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		phone := fmt.Sprintf("1380013800%d", i)
		email := fmt.Sprintf("u%d@example.com", i)
		f.register(t, phone, email, "secret1")
	}

	for i := 0; i < 5; i++ {
		phone := fmt.Sprintf("1380013800%d", i)
		has, _ := f.sessions.Contains(ctx, phone)
		if !has {
			t.Errorf("Expected independent session for %s", phone)
		}
	}

	// Ending one session leaves the others alone
	if err := f.svc.Logout(ctx, "13800138000"); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	for i := 1; i < 5; i++ {
		phone := fmt.Sprintf("1380013800%d", i)
		has, _ := f.sessions.Contains(ctx, phone)
		if !has {
			t.Errorf("Expected session for %s to survive", phone)
		}
	}
}
