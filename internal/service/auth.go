package service

import (
	"context"

	"github.com/lianxu-dev/user-center/internal/dto"
	apperrors "github.com/lianxu-dev/user-center/internal/errors"
	"github.com/lianxu-dev/user-center/internal/model"
	ctxutil "github.com/lianxu-dev/user-center/pkg/context"
	"github.com/lianxu-dev/user-center/pkg/logger"
)

// AuthService implements registration, login, logout and verification code
// delivery. Sessions live in the cache behind SessionCache; a user is logged
// in exactly while their cache entry exists.
type AuthService struct {
	users    UserStore
	sessions *SessionCache
	codes    *VerificationCodeService
	tokens   *TokenService
	hasher   PasswordHasher
	sender   CodeSender
}

func NewAuthService(
	users UserStore,
	sessions *SessionCache,
	codes *VerificationCodeService,
	tokens *TokenService,
	hasher PasswordHasher,
	sender CodeSender,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		codes:    codes,
		tokens:   tokens,
		hasher:   hasher,
		sender:   sender,
	}
}

// Register creates an account after checking phone uniqueness and consuming
// the email verification code, then opens a session and returns a token.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (string, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "auth_service", "Register")

	existing, err := s.users.FindByPhone(ctx, req.Phone)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if existing != nil {
		logger.WarnWithContext(ctx, "Registration rejected, phone already taken").
			String("phone", req.Phone).
			Log()
		return "", apperrors.ErrUserAlreadyExists
	}

	ok, err := s.codes.Verify(ctx, req.Code, req.Email)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !ok {
		logger.WarnWithContext(ctx, "Registration rejected, verification code mismatch").
			String("email", req.Email).
			Log()
		return "", apperrors.ErrInvalidVerificationCode
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		Username: req.Username,
		Password: hashed,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if user.Username == "" {
		user.Username = req.Phone
	}

	if err := s.users.Create(ctx, user); err != nil {
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("phone", req.Phone).
			Err(err).
			Log()
		return "", apperrors.WrapError(apperrors.ErrRegistrationFailed, err)
	}

	if err := s.sessions.Put(ctx, user); err != nil {
		logger.WarnWithContext(ctx, "Failed to cache session after registration").
			String("phone", user.Phone).
			Err(err).
			Log()
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.LogAuth(user.Phone, "register", true)
	return token, nil
}

// Login authenticates by phone and password and returns a fresh token. A live
// session short-circuits the password check: the cached identity is trusted
// for as long as the session entry lives.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (string, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "auth_service", "Login")

	user, err := s.sessions.Get(ctx, req.Phone)
	if err != nil {
		logger.WarnWithContext(ctx, "Session lookup failed, falling back to credentials").
			String("phone", req.Phone).
			Err(err).
			Log()
	}

	if user == nil {
		user, err = s.users.FindByPhone(ctx, req.Phone)
		if err != nil {
			return "", apperrors.WrapError(apperrors.ErrInternal, err)
		}
		if user == nil {
			logger.LogAuth(req.Phone, "login", false)
			return "", apperrors.ErrUserNotFound
		}
		if !s.hasher.Matches(req.Password, user.Password) {
			logger.LogAuth(req.Phone, "login", false)
			return "", apperrors.ErrInvalidCredentials
		}
	}

	if err := s.sessions.Put(ctx, user); err != nil {
		logger.WarnWithContext(ctx, "Failed to refresh session").
			String("phone", user.Phone).
			Err(err).
			Log()
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.LogAuth(user.Phone, "login", true)
	return token, nil
}

// Logout drops the session entry. Outstanding tokens for the phone stop
// passing the session gate immediately. Logging out an absent session is a
// no-op.
func (s *AuthService) Logout(ctx context.Context, phone string) error {
	ctx = ctxutil.WithModuleFunction(ctx, "auth_service", "Logout")

	if err := s.sessions.Invalidate(ctx, phone); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.LogAuth(phone, "logout", true)
	return nil
}

// SendEmailCode issues a code for the email address and dispatches it.
func (s *AuthService) SendEmailCode(ctx context.Context, email string) error {
	ctx = ctxutil.WithModuleFunction(ctx, "auth_service", "SendEmailCode")

	code, err := s.codes.Issue(ctx, email)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.sender.SendEmailCode(ctx, email, code, s.codes.TTL()); err != nil {
		logger.ErrorWithContext(ctx, "Failed to deliver email code").
			String("email", email).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrServiceUnavailable, err)
	}

	logger.InfoWithContext(ctx, "Email verification code sent").
		String("email", email).
		Log()
	return nil
}

// SendPhoneCode issues a code for the phone number and dispatches it.
func (s *AuthService) SendPhoneCode(ctx context.Context, phone string) error {
	ctx = ctxutil.WithModuleFunction(ctx, "auth_service", "SendPhoneCode")

	code, err := s.codes.Issue(ctx, phone)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.sender.SendPhoneCode(ctx, phone, code, s.codes.TTL()); err != nil {
		logger.ErrorWithContext(ctx, "Failed to deliver SMS code").
			String("phone", phone).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrServiceUnavailable, err)
	}

	logger.InfoWithContext(ctx, "SMS verification code sent").
		String("phone", phone).
		Log()
	return nil
}

// VerifyEmailCode consumes the stored code for the email address.
func (s *AuthService) VerifyEmailCode(ctx context.Context, code, email string) error {
	ctx = ctxutil.WithModuleFunction(ctx, "auth_service", "VerifyEmailCode")

	ok, err := s.codes.Verify(ctx, code, email)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !ok {
		return apperrors.ErrInvalidVerificationCode
	}
	return nil
}
