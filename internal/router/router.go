package router

import (
	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/consts"
	"github.com/jerrry-dev/ailuminate-v2/internal/handler"
	adminhandler "github.com/jerrry-dev/ailuminate-v2/internal/handler/admin"
	"github.com/jerrry-dev/ailuminate-v2/internal/middleware"
	"github.com/jerrry-dev/ailuminate-v2/internal/service"
)

type Router struct {
	service *service.AppService
	auth    *middleware.AuthMiddleware
}

func NewRouter(appService *service.AppService, auth *middleware.AuthMiddleware) *Router {
	return &Router{
		service: appService,
		auth:    auth,
	}
}

func (rt *Router) Init(r *gin.Engine) {
	// 全局安全标头和页面会话守卫
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.SessionGuard())

	api := r.Group("/api")
	api.Use(middleware.BodyLimitMiddleware(rt.service.Settings))

	// 认证限流：多个路由组复用同一个实例
	authLimiter := middleware.RateLimitMiddleware(rt.service.Settings, consts.ConfigRateLimitAuthRPS, consts.ConfigRateLimitAuthBurst)

	h := handler.NewHandler(rt.service)
	ah := adminhandler.NewHandler(rt.service)

	registerPublicRoutes(api, h)
	registerAuthRoutes(api, authLimiter, h)
	registerArticleRoutes(api, h, rt.auth)
	registerMessageRoutes(api, h, rt.auth)
	registerUserRoutes(api, h, rt.auth)
	registerAdminRoutes(api, authLimiter, h, ah, rt.auth)
}
