package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/common/httpx"
	"github.com/jerrry-dev/ailuminate-v2/internal/service"
)

type Handler struct {
	service *service.AppService
}

func NewHandler(appService *service.AppService) *Handler {
	return &Handler{service: appService}
}

// WriteServiceError 业务错误统一出口，供 admin 子包复用
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	httpx.WriteServiceError(c, err, fallbackMessage)
}
