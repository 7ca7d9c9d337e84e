package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/config"
	"github.com/jerrry-dev/ailuminate-v2/internal/consts"
)

// setSessionCookie 写会话 Cookie：HttpOnly + SameSite=Strict，
// release 模式下附加 Secure
func setSessionCookie(c *gin.Context, name string, token string) {
	cfg := config.Get()
	maxAge := cfg.JWT.ExpirationHours * 3600
	if maxAge <= 0 {
		maxAge = 7 * 24 * 3600
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, token, maxAge, "/", "", cfg.Server.Mode == "release", true)
}

func clearSessionCookie(c *gin.Context, name string) {
	cfg := config.Get()
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, "", -1, "/", "", cfg.Server.Mode == "release", true)
}

func (h *Handler) Signup(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数格式错误"})
		return
	}

	user, err := h.service.Auth.Signup(req.Username, req.Email, req.Password)
	if err != nil {
		WriteServiceError(c, err, "注册失败，请稍后重试")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "注册成功，请前往邮箱验证",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"verified": user.EmailVerified,
		},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	user, token, err := h.service.Auth.Login(req.Email, req.Password)
	if err != nil {
		WriteServiceError(c, err, "登录失败，请稍后重试")
		return
	}

	setSessionCookie(c, consts.AuthCookieName, token)
	c.JSON(http.StatusOK, gin.H{
		"message": "登录成功",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

func (h *Handler) Logout(c *gin.Context) {
	clearSessionCookie(c, consts.AuthCookieName)
	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}

func (h *Handler) VerifyEmail(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if err := h.service.Auth.VerifyEmail(req.Token); err != nil {
		WriteServiceError(c, err, "验证失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "邮箱验证成功，现在可以登录了"})
}

// AdminLogin 管理员登录，签发独立的 admin_token Cookie
func (h *Handler) AdminLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	admin, token, err := h.service.Auth.AdminLogin(req.Email, req.Password)
	if err != nil {
		WriteServiceError(c, err, "登录失败，请稍后重试")
		return
	}

	setSessionCookie(c, consts.AdminCookieName, token)
	c.JSON(http.StatusOK, gin.H{
		"message": "登录成功",
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"email":    admin.Email,
		},
	})
}

func (h *Handler) AdminLogout(c *gin.Context) {
	clearSessionCookie(c, consts.AdminCookieName)
	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}
