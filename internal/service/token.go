package service

import (
	"crypto/sha256"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/lianxu-dev/user-center/internal/errors"
	"github.com/lianxu-dev/user-center/internal/model"
)

// TokenService issues and validates signed tokens binding a user identity to
// a time-bounded credential. The signing key is the SHA-256 digest of the
// configured secret.
type TokenService struct {
	secretKey string
	ttl       time.Duration
}

func NewTokenService(secretKey string, ttl time.Duration) *TokenService {
	return &TokenService{
		secretKey: secretKey,
		ttl:       ttl,
	}
}

type userClaims struct {
	User *model.User `json:"user"`
	jwt.RegisteredClaims
}

func (s *TokenService) signingKey() []byte {
	hash := sha256.Sum256([]byte(s.secretKey))
	return hash[:]
}

// Generate creates a new token for the user. Subject is the phone; the full
// identity snapshot rides along as a claim.
func (s *TokenService) Generate(user *model.User) (string, error) {
	now := time.Now()
	claims := userClaims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Phone,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.signingKey())
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Decode parses and verifies a token and returns the embedded identity.
// An expired token fails with ErrTokenExpired; every other decode or
// signature failure collapses into ErrInvalidToken.
func (s *TokenService) Decode(tokenString string) (*model.User, error) {
	claims := &userClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.signingKey(), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.WrapError(apperrors.ErrTokenExpired, err)
		}
		return nil, apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}

	if !token.Valid || claims.User == nil {
		return nil, apperrors.ErrInvalidToken
	}

	return claims.User, nil
}

// Validate reports whether the token is unexpired, correctly signed, and
// bound to the given user's phone.
func (s *TokenService) Validate(tokenString string, user *model.User) bool {
	decoded, err := s.Decode(tokenString)
	if err != nil {
		return false
	}
	return decoded.Phone == user.Phone
}
