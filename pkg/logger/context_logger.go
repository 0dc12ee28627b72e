package logger

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lianxu-dev/user-center/internal/constants"
)

// LogBuilder is a fluent builder that carries context-derived fields.
// Typical usage:
//
//	logger.InfoWithContext(ctx, "User login attempt").
//		String("phone", phone).
//		Log()
type LogBuilder struct {
	level   zapcore.Level
	message string
	fields  []zap.Field
}

func newBuilder(ctx context.Context, level zapcore.Level, message string) *LogBuilder {
	b := &LogBuilder{
		level:   level,
		message: message,
		fields:  make([]zap.Field, 0, 8),
	}
	b.extractContextFields(ctx)
	return b
}

func (b *LogBuilder) extractContextFields(ctx context.Context) {
	if ctx == nil {
		return
	}

	if v, ok := ctx.Value(constants.CtxKeyRequestID).(string); ok && v != "" {
		b.fields = append(b.fields, zap.String("request_id", v))
	}
	if v, ok := ctx.Value(constants.CtxKeyClientIP).(string); ok && v != "" {
		b.fields = append(b.fields, zap.String("client_ip", v))
	}
	if v, ok := ctx.Value(constants.CtxKeyModule).(string); ok && v != "" {
		b.fields = append(b.fields, zap.String("module", v))
	}
	if v, ok := ctx.Value(constants.CtxKeyFunction).(string); ok && v != "" {
		b.fields = append(b.fields, zap.String("function", v))
	}
}

// InfoWithContext starts an info-level log entry with context fields
func InfoWithContext(ctx context.Context, message string) *LogBuilder {
	return newBuilder(ctx, zapcore.InfoLevel, message)
}

// WarnWithContext starts a warn-level log entry with context fields
func WarnWithContext(ctx context.Context, message string) *LogBuilder {
	return newBuilder(ctx, zapcore.WarnLevel, message)
}

// ErrorWithContext starts an error-level log entry with context fields
func ErrorWithContext(ctx context.Context, message string) *LogBuilder {
	return newBuilder(ctx, zapcore.ErrorLevel, message)
}

// DebugWithContext starts a debug-level log entry with context fields
func DebugWithContext(ctx context.Context, message string) *LogBuilder {
	return newBuilder(ctx, zapcore.DebugLevel, message)
}

func (b *LogBuilder) String(key, value string) *LogBuilder {
	b.fields = append(b.fields, zap.String(key, value))
	return b
}

func (b *LogBuilder) Int(key string, value int) *LogBuilder {
	b.fields = append(b.fields, zap.Int(key, value))
	return b
}

func (b *LogBuilder) Int64(key string, value int64) *LogBuilder {
	b.fields = append(b.fields, zap.Int64(key, value))
	return b
}

func (b *LogBuilder) Uint(key string, value uint) *LogBuilder {
	b.fields = append(b.fields, zap.Uint(key, value))
	return b
}

func (b *LogBuilder) Bool(key string, value bool) *LogBuilder {
	b.fields = append(b.fields, zap.Bool(key, value))
	return b
}

func (b *LogBuilder) Duration(value time.Duration) *LogBuilder {
	b.fields = append(b.fields, zap.Duration("duration", value))
	return b
}

func (b *LogBuilder) Err(err error) *LogBuilder {
	b.fields = append(b.fields, zap.Error(err))
	return b
}

// Log emits the accumulated entry
func (b *LogBuilder) Log() {
	l := GetLogger()
	switch b.level {
	case zapcore.DebugLevel:
		l.Debug(b.message, b.fields...)
	case zapcore.InfoLevel:
		l.Info(b.message, b.fields...)
	case zapcore.WarnLevel:
		l.Warn(b.message, b.fields...)
	case zapcore.ErrorLevel:
		l.Error(b.message, b.fields...)
	}
}
