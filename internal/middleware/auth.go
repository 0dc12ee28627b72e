package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lianxu-dev/user-center/internal/constants"
	"github.com/lianxu-dev/user-center/internal/model"
	"github.com/lianxu-dev/user-center/internal/service"
	ctxutil "github.com/lianxu-dev/user-center/pkg/context"
	"github.com/lianxu-dev/user-center/pkg/logger"
)

const bearerPrefix = "Bearer "

// AuthMiddleware resolves the request principal from the Authorization
// header. Authenticate never rejects a request; it only attaches identity
// when the token checks out and a live session backs it. Rejection is
// RequireAuth's job.
type AuthMiddleware struct {
	tokens   *service.TokenService
	sessions *service.SessionCache
	users    service.UserStore
}

func NewAuthMiddleware(tokens *service.TokenService, sessions *service.SessionCache, users service.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		sessions: sessions,
		users:    users,
	}
}

// Authenticate attaches a principal to the request when the Authorization
// header carries a valid token whose subject still has a session entry. All
// failure modes leave the request anonymous and let it continue.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithModuleFunction(c.Request.Context(), "auth_middleware", "Authenticate")

		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		if _, exists := c.Get(constants.GinKeyPrincipal); exists {
			c.Next()
			return
		}

		token := header
		if strings.HasPrefix(header, bearerPrefix) {
			token = header[len(bearerPrefix):]
		}

		user, err := m.tokens.Decode(token)
		if err != nil {
			logger.DebugWithContext(ctx, "Token rejected").
				String("path", c.Request.URL.Path).
				Err(err).
				Log()
			c.Next()
			return
		}

		alive, err := m.sessions.Contains(ctx, user.Phone)
		if err != nil {
			logger.WarnWithContext(ctx, "Session check failed").
				String("phone", user.Phone).
				Err(err).
				Log()
			c.Next()
			return
		}
		if !alive {
			logger.DebugWithContext(ctx, "Token holds no live session").
				String("phone", user.Phone).
				Log()
			c.Next()
			return
		}

		current, err := m.users.FindByPhone(ctx, user.Phone)
		if err != nil || current == nil {
			logger.WarnWithContext(ctx, "Session owner not found").
				String("phone", user.Phone).
				Err(err).
				Log()
			c.Next()
			return
		}

		c.Set(constants.GinKeyPrincipal, model.NewPrincipal(current))
		c.Set(constants.GinKeyPhone, current.Phone)
		c.Next()
	}
}

// RequireAuth rejects requests that reached it without a principal, and
// principals whose account cannot act.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(constants.GinKeyPrincipal)
		if !exists {
			c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", ""))
			c.Abort()
			return
		}

		principal, ok := value.(*model.Principal)
		if !ok {
			c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", ""))
			c.Abort()
			return
		}

		if principal.Locked() {
			c.JSON(http.StatusForbidden, constants.BuildErrorResponse("Account is locked", ""))
			c.Abort()
			return
		}
		if !principal.Enabled() {
			c.JSON(http.StatusForbidden, constants.BuildErrorResponse("Account is disabled", ""))
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentPrincipal returns the authenticated principal attached by
// Authenticate, or nil for anonymous requests.
func CurrentPrincipal(c *gin.Context) *model.Principal {
	value, exists := c.Get(constants.GinKeyPrincipal)
	if !exists {
		return nil
	}
	principal, ok := value.(*model.Principal)
	if !ok {
		return nil
	}
	return principal
}
