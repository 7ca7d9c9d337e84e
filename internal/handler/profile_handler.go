package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/middleware"
	"github.com/jerrry-dev/ailuminate-v2/internal/service"
)

func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
		return
	}

	user, err := h.service.Profile.Get(userID)
	if err != nil {
		WriteServiceError(c, err, "资料获取失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
		return
	}

	var req struct {
		Name   *string `json:"name"`
		Bio    *string `json:"bio"`
		Avatar *string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数格式错误"})
		return
	}

	user, err := h.service.Profile.Update(userID, service.ProfileUpdateInput{
		Name:   req.Name,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		WriteServiceError(c, err, "资料更新失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "资料更新成功", "user": user})
}
