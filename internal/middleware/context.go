package middleware

import (
	"github.com/gin-gonic/gin"

	ctxutil "github.com/lianxu-dev/user-center/pkg/context"
)

// ContextMiddleware stamps the request context with the request ID, client
// address and module name so downstream log lines carry them.
func ContextMiddleware(module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, module, c.Request.URL.Path)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
