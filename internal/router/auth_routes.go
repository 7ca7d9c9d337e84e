package router

import (
	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/handler"
)

func registerAuthRoutes(api *gin.RouterGroup, authLimiter gin.HandlerFunc, h *handler.Handler) {
	api.POST("/auth/signup", authLimiter, h.Signup)
	api.POST("/auth/login", authLimiter, h.Login)
	api.POST("/auth/logout", h.Logout)
	api.POST("/auth/verify-email", h.VerifyEmail)
}
