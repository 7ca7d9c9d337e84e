package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/middleware"
)

// SearchUsers 按用户名或昵称搜索，结果不含调用者自己
func (h *Handler) SearchUsers(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
		return
	}

	users, err := h.service.Profile.Search(c.Query("q"), userID)
	if err != nil {
		WriteServiceError(c, err, "用户搜索失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
