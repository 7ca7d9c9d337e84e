package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jerrry-dev/ailuminate-v2/internal/common"
	"github.com/jerrry-dev/ailuminate-v2/internal/model"
	"github.com/jerrry-dev/ailuminate-v2/internal/repository"
	"github.com/jerrry-dev/ailuminate-v2/internal/utils"
)

type AdminService struct {
	adminStore repository.AdminStore
	userStore  repository.UserStore
	articles   repository.ArticleStore
}

func NewAdminService(adminStore repository.AdminStore, userStore repository.UserStore, articles repository.ArticleStore) *AdminService {
	return &AdminService{
		adminStore: adminStore,
		userStore:  userStore,
		articles:   articles,
	}
}

// BootstrapAdmin 创建管理员账号。没有对外注册入口，
// 只通过 main 的 -create-admin 开关调用。
func (s *AdminService) BootstrapAdmin(username, email, password, name string) (*model.Admin, error) {
	if ok, msg := utils.ValidateUsername(username); !ok {
		return nil, common.NewValidationError(msg)
	}
	if ok, msg := utils.ValidateEmail(email); !ok {
		return nil, common.NewValidationError(msg)
	}
	if ok, msg := utils.ValidatePassword(password); !ok {
		return nil, common.NewValidationError(msg)
	}

	if _, err := s.adminStore.FindByUsername(username); err == nil {
		return nil, common.NewConflictError("管理员用户名已存在")
	}
	if _, err := s.adminStore.FindByEmail(email); err == nil {
		return nil, common.NewConflictError("管理员邮箱已存在")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewInternalError("密码加密失败")
	}

	admin := &model.Admin{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Name:     strings.TrimSpace(name),
	}
	if err := s.adminStore.Create(admin); err != nil {
		return nil, common.NewInternalError("管理员创建失败")
	}
	return admin, nil
}

// ListUsers 管理端用户列表，支持用户名/邮箱关键字筛选
func (s *AdminService) ListUsers(keyword string, page int, limit int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	users, total, err := s.userStore.ListUsers(keyword, "created_at DESC", (page-1)*limit, limit)
	if err != nil {
		return nil, 0, common.NewInternalError("用户列表获取失败，请稍后重试")
	}
	return users, total, nil
}

// ListArticles 管理端文章列表，含草稿
func (s *AdminService) ListArticles(status string, keyword string, page int, limit int) ([]model.Article, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	articles, total, err := s.articles.Mirror().List(status, 0, keyword, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, common.NewInternalError("文章列表获取失败，请稍后重试")
	}
	return articles, total, nil
}

// Stats 仪表盘概览计数
func (s *AdminService) Stats() (map[string]int64, error) {
	userCount, err := s.userStore.CountAll()
	if err != nil {
		return nil, common.NewInternalError("统计获取失败，请稍后重试")
	}
	articleCount, err := s.articles.Mirror().CountAll()
	if err != nil {
		return nil, common.NewInternalError("统计获取失败，请稍后重试")
	}
	return map[string]int64{
		"users":    userCount,
		"articles": articleCount,
	}, nil
}
