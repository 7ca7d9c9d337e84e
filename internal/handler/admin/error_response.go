package admin

import (
	basehandler "github.com/jerrry-dev/ailuminate-v2/internal/handler"

	"github.com/gin-gonic/gin"
)

func writeServiceError(c *gin.Context, err error, fallbackMessage string) {
	basehandler.WriteServiceError(c, err, fallbackMessage)
}
