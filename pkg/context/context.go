package ctxutil

import (
	"context"
	"net/http"

	"github.com/lianxu-dev/user-center/internal/constants"
)

// Re-export ContextKey type
type ContextKey = constants.ContextKey

// Re-export context keys
const (
	RequestIDKey = constants.CtxKeyRequestID
	UserIDKey    = constants.CtxKeyUserID
	ClientIPKey  = constants.CtxKeyClientIP
	UserAgentKey = constants.CtxKeyUserAgent
	StartTimeKey = constants.CtxKeyStartTime
	ModuleKey    = constants.CtxKeyModule
	FunctionKey  = constants.CtxKeyFunction
)

// WithModuleFunction stamps the current module and function into the context
// so downstream log entries carry them
func WithModuleFunction(ctx context.Context, module, function string) context.Context {
	ctx = context.WithValue(ctx, ModuleKey, module)
	return context.WithValue(ctx, FunctionKey, function)
}

// NewContextWithRequest derives a context enriched with request metadata
// and module/function markers, used at handler entry points
func NewContextWithRequest(ctx context.Context, r *http.Request, module, function string) context.Context {
	if r != nil {
		ctx = context.WithValue(ctx, ClientIPKey, r.RemoteAddr)
		ctx = context.WithValue(ctx, UserAgentKey, r.UserAgent())
	}
	return WithModuleFunction(ctx, module, function)
}

// GetRequestID returns the request ID from context, if any
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}

// GetClientIP returns the client IP from context, if any
func GetClientIP(ctx context.Context) string {
	if v, ok := ctx.Value(ClientIPKey).(string); ok {
		return v
	}
	return ""
}
