package router

import (
	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/handler"
	"github.com/jerrry-dev/ailuminate-v2/internal/middleware"
)

func registerArticleRoutes(api *gin.RouterGroup, h *handler.Handler, auth *middleware.AuthMiddleware) {
	// 列表和详情公开访问；草稿查询由处理器按登录态判定
	api.GET("/articles", auth.Identify(), h.ListArticles)
	api.GET("/articles/:id", h.GetArticle)
	api.GET("/articles/:id/comments", h.ListComments)

	authed := api.Group("")
	authed.Use(auth.UserRequired(), auth.UserCheck())
	authed.POST("/articles", h.CreateArticle)
	authed.PUT("/articles/:id", h.UpdateArticle)
	authed.POST("/articles/:id/like", h.ToggleLike)
	authed.POST("/articles/:id/comments", h.AddComment)

	// 删除允许作者或管理员 Cookie，权限判定在处理器内
	api.DELETE("/articles/:id", auth.Identify(), h.DeleteArticle)
}
