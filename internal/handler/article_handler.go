package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/consts"
	"github.com/jerrry-dev/ailuminate-v2/internal/middleware"
	"github.com/jerrry-dev/ailuminate-v2/internal/service"
)

type articleRequest struct {
	Title     *string  `json:"title"`
	Content   *string  `json:"content"`
	Excerpt   *string  `json:"excerpt"`
	Tags      []string `json:"tags"`
	Thumbnail *string  `json:"thumbnail"`
	Status    *string  `json:"status"`
}

func (r *articleRequest) toInput() service.ArticleInput {
	return service.ArticleInput{
		Title:     r.Title,
		Content:   r.Content,
		Excerpt:   r.Excerpt,
		Tags:      r.Tags,
		Thumbnail: r.Thumbnail,
		Status:    r.Status,
	}
}

func (h *Handler) CreateArticle(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数格式错误"})
		return
	}

	doc, err := h.service.Article.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		WriteServiceError(c, err, "文章创建失败，请稍后重试")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "文章创建成功", "article": doc})
}

// ListArticles 公开文章列表。
// 非 published 状态的查询需要登录，且只能看自己的。
func (h *Handler) ListArticles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	keyword := c.Query("q")
	tag := c.Query("tag")
	status := c.DefaultQuery("status", consts.ArticleStatusPublished)

	var authorID uint
	if idStr := c.Query("author_id"); idStr != "" {
		if parsed, err := strconv.ParseUint(idStr, 10, 32); err == nil {
			authorID = uint(parsed)
		}
	}

	if status != consts.ArticleStatusPublished {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能查看非公开文章"})
			return
		}
		// 草稿只对作者本人可见
		authorID = userID
	}

	articles, total, err := h.service.Article.List(c.Request.Context(), status, authorID, keyword, tag, page, limit)
	if err != nil {
		WriteServiceError(c, err, "文章列表获取失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (h *Handler) GetArticle(c *gin.Context) {
	detail, err := h.service.Article.Fetch(c.Request.Context(), c.Param("id"))
	if err != nil {
		WriteServiceError(c, err, "文章获取失败，请稍后重试")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) UpdateArticle(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数格式错误"})
		return
	}

	doc, err := h.service.Article.Update(c.Request.Context(), c.Param("id"), userID, req.toInput())
	if err != nil {
		WriteServiceError(c, err, "文章更新失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章更新成功", "article": doc})
}

// DeleteArticle 作者本人或持有效管理员 Cookie 的请求可删除
func (h *Handler) DeleteArticle(c *gin.Context) {
	userID, hasUser := middleware.CurrentUserID(c)
	isAdmin := middleware.IsAdminRequest(c)

	if !hasUser && !isAdmin {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
		return
	}

	if err := h.service.Article.Delete(c.Request.Context(), c.Param("id"), userID, isAdmin); err != nil {
		WriteServiceError(c, err, "文章删除失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章已删除"})
}

func (h *Handler) ToggleLike(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
		return
	}

	liked, likeCount, err := h.service.Article.ToggleLike(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		WriteServiceError(c, err, "操作失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked, "like_count": likeCount})
}

func (h *Handler) ListComments(c *gin.Context) {
	comments, err := h.service.Article.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		WriteServiceError(c, err, "评论获取失败，请稍后重试")
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *Handler) AddComment(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	comment, err := h.service.Article.AddComment(c.Request.Context(), c.Param("id"), userID, req.Content)
	if err != nil {
		WriteServiceError(c, err, "评论失败，请稍后重试")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "评论成功", "comment": comment})
}
