package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/middleware"
	"github.com/jerrry-dev/ailuminate-v2/internal/service"
)

// RegisterFile 登记已上传到对象存储的文件元数据
func (h *Handler) RegisterFile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
		URL  string `json:"url" binding:"required"`
		Type string `json:"type"`
		Size int64  `json:"size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数格式错误"})
		return
	}

	file, err := h.service.File.Register(userID, service.FileInput{
		Name: req.Name,
		URL:  req.URL,
		Type: req.Type,
		Size: req.Size,
	})
	if err != nil {
		WriteServiceError(c, err, "文件登记失败，请稍后重试")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "文件登记成功", "file": file})
}

func (h *Handler) ListMyFiles(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	files, total, err := h.service.File.ListMine(userID, page, limit)
	if err != nil {
		WriteServiceError(c, err, "文件列表获取失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files, "total": total, "page": page, "limit": limit})
}

func (h *Handler) DeleteFile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
		return
	}

	fileID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if err := h.service.File.Delete(uint(fileID), userID); err != nil {
		WriteServiceError(c, err, "文件删除失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文件已删除"})
}
