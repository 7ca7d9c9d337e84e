package router

import (
	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/handler"
	adminhandler "github.com/jerrry-dev/ailuminate-v2/internal/handler/admin"
	"github.com/jerrry-dev/ailuminate-v2/internal/middleware"
)

func registerAdminRoutes(api *gin.RouterGroup, authLimiter gin.HandlerFunc, h *handler.Handler, ah *adminhandler.Handler, auth *middleware.AuthMiddleware) {
	api.POST("/admin/login", authLimiter, h.AdminLogin)
	api.POST("/admin/logout", h.AdminLogout)

	admin := api.Group("/admin")
	admin.Use(auth.AdminRequired())

	admin.GET("/stats", ah.Stats)
	admin.GET("/users", ah.ListUsers)
	admin.GET("/articles", ah.ListArticles)
	admin.GET("/settings", ah.GetSettings)
	admin.PATCH("/settings", ah.UpdateSettings)
	admin.POST("/settings/test-email", ah.SendTestEmail)
}
