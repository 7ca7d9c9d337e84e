package service

import (
	"github.com/jerrry-dev/ailuminate-v2/internal/repository"
)

// AppService 聚合全部业务服务，由 main 构造后注入路由层
type AppService struct {
	Repos    *repository.Repositories
	Settings *SettingsService
	Redis    *RedisService
	Email    *EmailService
	Auth     *AuthService
	Article  *ArticleService
	Message  *MessageService
	Profile  *ProfileService
	File     *FileService
	Admin    *AdminService
}

func NewAppService(repos *repository.Repositories, redisSvc *RedisService) *AppService {
	settings := NewSettingsService(repos.Setting)
	email := NewEmailService(settings)

	return &AppService{
		Repos:    repos,
		Settings: settings,
		Redis:    redisSvc,
		Email:    email,
		Auth:     NewAuthService(repos.User, repos.Admin, settings, email),
		Article:  NewArticleService(repos.Article, repos.User),
		Message:  NewMessageService(repos.Message, repos.User, repos.File),
		Profile:  NewProfileService(repos.User, repos.Article, settings),
		File:     NewFileService(repos.File),
		Admin:    NewAdminService(repos.Admin, repos.User, repos.Article),
	}
}
