package router

import "github.com/gin-gonic/gin"

func (r *Router) userRoutes(version *gin.RouterGroup) {
	users := version.Group("/users")
	{
		// All user routes require an authenticated, active account
		users.Use(r.authMw.RequireAuth())
		{
			users.GET("/me", r.userHandler.Me)
			users.PUT("/me", r.userHandler.UpdateMe)
		}
	}
}
