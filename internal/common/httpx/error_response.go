package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/common"
)

// WriteServiceError 将业务错误映射为 HTTP 响应。
// 非 ServiceError 的错误一律按 500 处理并返回 fallbackMessage，
// 避免把内部细节泄露给客户端。
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	var svcErr *common.ServiceError
	if !errors.As(err, &svcErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMessage})
		return
	}

	body := gin.H{"error": svcErr.Message}
	if len(svcErr.Fields) > 0 {
		body["details"] = svcErr.Fields
	}

	switch svcErr.Code {
	case common.ErrCodeValidation:
		c.JSON(http.StatusBadRequest, body)
	case common.ErrCodeUnauthorized:
		c.JSON(http.StatusUnauthorized, body)
	case common.ErrCodeForbidden:
		c.JSON(http.StatusForbidden, body)
	case common.ErrCodeNotFound:
		c.JSON(http.StatusNotFound, body)
	case common.ErrCodeConflict:
		c.JSON(http.StatusConflict, body)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMessage})
	}
}
