package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/consts"
	"github.com/jerrry-dev/ailuminate-v2/internal/utils"
)

// 需要用户登录态的页面前缀
var userGuardedPrefixes = []string{"/dashboard", "/write", "/profile", "/messages"}

// SessionGuard 页面级会话守卫。
// 受保护页面缺少有效 Cookie 时重定向到对应登录页；
// API 路由不经过这里，各自返回 JSON 错误。
func SessionGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		// API 与静态资源直接放行
		if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/static/") {
			c.Next()
			return
		}

		if strings.HasPrefix(path, "/admin") && path != "/admin/login" {
			if !hasValidAdminCookie(c) {
				c.Redirect(http.StatusFound, "/admin/login")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		for _, prefix := range userGuardedPrefixes {
			if strings.HasPrefix(path, prefix) {
				if !hasValidUserCookie(c) {
					c.Redirect(http.StatusFound, "/auth/login")
					c.Abort()
					return
				}
				break
			}
		}

		c.Next()
	}
}

func hasValidUserCookie(c *gin.Context) bool {
	token, err := c.Cookie(consts.AuthCookieName)
	if err != nil || token == "" {
		return false
	}
	_, err = utils.ParseLoginToken(token)
	return err == nil
}

func hasValidAdminCookie(c *gin.Context) bool {
	token, err := c.Cookie(consts.AdminCookieName)
	if err != nil || token == "" {
		return false
	}
	_, err = utils.ParseAdminToken(token)
	return err == nil
}
