package router

import (
	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/handler"
	"github.com/jerrry-dev/ailuminate-v2/internal/middleware"
)

func registerUserRoutes(api *gin.RouterGroup, h *handler.Handler, auth *middleware.AuthMiddleware) {
	authed := api.Group("")
	authed.Use(auth.UserRequired(), auth.UserCheck())

	authed.GET("/profile", h.GetProfile)
	authed.PUT("/profile", h.UpdateProfile)
	authed.GET("/users/search", h.SearchUsers)

	authed.POST("/files", h.RegisterFile)
	authed.GET("/files", h.ListMyFiles)
	authed.DELETE("/files/:id", h.DeleteFile)
}
