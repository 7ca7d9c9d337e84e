package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/consts"
	"github.com/jerrry-dev/ailuminate-v2/internal/service"
)

// BodyLimitMiddleware 限制请求体大小
func BodyLimitMiddleware(settings *service.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		maxSizeMB := settings.GetInt(consts.ConfigMaxRequestBodySize)
		if maxSizeMB <= 0 {
			// 如果未设置或为0，默认 2MB
			maxSizeMB = 2
		}

		// 限制大小 (MB -> Bytes)
		maxBytes := int64(maxSizeMB) * 1024 * 1024

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

		c.Next()
	}
}
