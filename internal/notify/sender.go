package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lianxu-dev/user-center/pkg/circuit"
	"github.com/lianxu-dev/user-center/pkg/logger"
)

// LogSender writes codes to the application log instead of dispatching them.
// It stands in for real email and SMS providers in development and tests.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) SendEmailCode(ctx context.Context, email, code string, ttl time.Duration) error {
	logger.GetLogger().Info("Verification code issued",
		zap.String("channel", "email"),
		zap.String("address", email),
		zap.String("code", code),
		zap.Duration("ttl", ttl),
	)
	return nil
}

func (s *LogSender) SendPhoneCode(ctx context.Context, phone, code string, ttl time.Duration) error {
	logger.GetLogger().Info("Verification code issued",
		zap.String("channel", "sms"),
		zap.String("address", phone),
		zap.String("code", code),
		zap.Duration("ttl", ttl),
	)
	return nil
}

// Sender is the delivery contract GuardedSender wraps. It matches
// service.CodeSender so guards can stack over any backend.
type Sender interface {
	SendEmailCode(ctx context.Context, email, code string, ttl time.Duration) error
	SendPhoneCode(ctx context.Context, phone, code string, ttl time.Duration) error
}

// GuardedSender wraps a Sender with one circuit breaker per channel so a
// failing provider sheds load instead of stalling every code request.
type GuardedSender struct {
	inner Sender
	email *circuit.Breaker
	sms   *circuit.Breaker
}

func NewGuardedSender(inner Sender, log *zap.Logger) *GuardedSender {
	return &GuardedSender{
		inner: inner,
		email: circuit.NewBreaker("email-sender", circuit.DefaultConfig(), log),
		sms:   circuit.NewBreaker("sms-sender", circuit.DefaultConfig(), log),
	}
}

func (s *GuardedSender) SendEmailCode(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.email.Execute(func() error {
		return s.inner.SendEmailCode(ctx, email, code, ttl)
	})
}

func (s *GuardedSender) SendPhoneCode(ctx context.Context, phone, code string, ttl time.Duration) error {
	return s.sms.Execute(func() error {
		return s.inner.SendPhoneCode(ctx, phone, code, ttl)
	})
}
