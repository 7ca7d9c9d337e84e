package router

import (
	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/handler"
	"github.com/jerrry-dev/ailuminate-v2/internal/middleware"
)

func registerMessageRoutes(api *gin.RouterGroup, h *handler.Handler, auth *middleware.AuthMiddleware) {
	messages := api.Group("/messages")
	messages.Use(auth.UserRequired(), auth.UserCheck())

	messages.GET("", h.ListConversations)
	messages.POST("", h.SendMessage)
	messages.GET("/unread-count", h.UnreadCount)
	messages.GET("/:id", h.GetConversation)
}
