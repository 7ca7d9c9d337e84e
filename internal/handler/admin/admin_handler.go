package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/service"
	"github.com/jerrry-dev/ailuminate-v2/internal/utils"
)

type Handler struct {
	service *service.AppService
}

func NewHandler(appService *service.AppService) *Handler {
	return &Handler{service: appService}
}

// Stats 仪表盘概览
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Admin.Stats()
	if err != nil {
		writeServiceError(c, err, "统计获取失败，请稍后重试")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// ListUsers 管理端用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	keyword := c.Query("q")

	users, total, err := h.service.Admin.ListUsers(keyword, page, limit)
	if err != nil {
		writeServiceError(c, err, "用户列表获取失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": total, "page": page, "limit": limit})
}

// ListArticles 管理端文章列表，含草稿
func (h *Handler) ListArticles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := c.Query("status")
	keyword := c.Query("q")

	articles, total, err := h.service.Admin.ListArticles(status, keyword, page, limit)
	if err != nil {
		writeServiceError(c, err, "文章列表获取失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles, "total": total, "page": page, "limit": limit})
}

// GetSettings 列出全部运行配置，敏感项脱敏
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.service.Settings.ListMasked()
	if err != nil {
		writeServiceError(c, err, "配置获取失败，请稍后重试")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings 批量更新运行配置
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req struct {
		Settings map[string]string `json:"settings" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数格式错误"})
		return
	}

	if err := h.service.Settings.Update(req.Settings); err != nil {
		writeServiceError(c, err, "配置更新失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "配置更新成功"})
}

// SendTestEmail 向指定邮箱发送一封 SMTP 测试邮件，验证当前邮件配置
func (h *Handler) SendTestEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数格式错误"})
		return
	}
	if ok, msg := utils.ValidateEmail(req.Email); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := h.service.Email.SendTestEmail(req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "测试邮件发送失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "测试邮件已发送"})
}
