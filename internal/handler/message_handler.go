package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/middleware"
)

func (h *Handler) SendMessage(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
		return
	}

	var req struct {
		RecipientID uint   `json:"recipient_id" binding:"required"`
		Content     string `json:"content"`
		FileIDs     []uint `json:"file_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数格式错误"})
		return
	}

	message, err := h.service.Message.Send(userID, req.RecipientID, req.Content, req.FileIDs)
	if err != nil {
		WriteServiceError(c, err, "消息发送失败，请稍后重试")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "发送成功", "data": message})
}

// ListConversations 会话列表：对端、最近一条消息和未读数
func (h *Handler) ListConversations(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
		return
	}

	conversations, err := h.service.Message.Conversations(userID)
	if err != nil {
		WriteServiceError(c, err, "会话列表获取失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// GetConversation 拉取与某用户的往来消息。
// 拉取会把发给调用者的未读消息标记为已读。
func (h *Handler) GetConversation(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
		return
	}

	peerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	messages, total, err := h.service.Message.Conversation(userID, uint(peerID), page, limit)
	if err != nil {
		WriteServiceError(c, err, "消息获取失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (h *Handler) UnreadCount(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
		return
	}

	count, err := h.service.Message.UnreadCount(userID)
	if err != nil {
		WriteServiceError(c, err, "未读数获取失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}
