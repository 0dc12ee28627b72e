package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lianxu-dev/user-center/internal/middleware"
)

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/register", r.authHandler.Register)
		auth.POST("/login", r.authHandler.Login)

		// Code delivery gets its own tighter limit
		codes := auth.Group("/code")
		codes.Use(middleware.RateLimit(r.Config.RateLimit.CodeRequest, time.Duration(r.Config.RateLimit.CodeDuration)*time.Second))
		{
			codes.GET("/email", r.authHandler.SendEmailCode)
			codes.GET("/phone", r.authHandler.SendPhoneCode)
			codes.POST("/email/verify", r.authHandler.VerifyEmailCode)
		}

		// Protected routes
		protected := auth.Group("")
		protected.Use(r.authMw.RequireAuth())
		{
			protected.POST("/logout", r.authHandler.Logout)
		}
	}
}
