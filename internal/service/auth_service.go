package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jerrry-dev/ailuminate-v2/internal/common"
	"github.com/jerrry-dev/ailuminate-v2/internal/consts"
	"github.com/jerrry-dev/ailuminate-v2/internal/model"
	"github.com/jerrry-dev/ailuminate-v2/internal/repository"
	"github.com/jerrry-dev/ailuminate-v2/internal/utils"
)

type AuthService struct {
	userStore  repository.UserStore
	adminStore repository.AdminStore
	settings   *SettingsService
	email      *EmailService
}

func NewAuthService(userStore repository.UserStore, adminStore repository.AdminStore, settings *SettingsService, email *EmailService) *AuthService {
	return &AuthService{
		userStore:  userStore,
		adminStore: adminStore,
		settings:   settings,
		email:      email,
	}
}

// Signup 注册新用户并异步发送邮箱验证邮件。
// 新用户始终以未验证状态创建，验证前无法登录。
func (s *AuthService) Signup(username, email, password string) (*model.User, error) {
	fields := map[string]string{}
	if ok, msg := utils.ValidateUsername(username); !ok {
		fields["username"] = msg
	}
	if ok, msg := utils.ValidateEmail(email); !ok {
		fields["email"] = msg
	}
	if ok, msg := utils.ValidatePassword(password); !ok {
		fields["password"] = msg
	}
	if len(fields) > 0 {
		return nil, common.NewFieldError("参数校验失败", fields)
	}

	if !s.settings.GetBool(consts.ConfigAllowSignup) {
		return nil, common.NewForbiddenError("注册功能已关闭")
	}

	usernameTaken, err := s.userStore.FieldExists(repository.UserFieldUsername, username, nil)
	if err != nil {
		return nil, common.NewInternalError("注册失败，请稍后重试")
	}
	if usernameTaken {
		return nil, common.NewFieldError("参数校验失败", map[string]string{"username": "用户名已存在"})
	}

	emailTaken, err := s.userStore.FieldExists(repository.UserFieldEmail, email, nil)
	if err != nil {
		return nil, common.NewInternalError("注册失败，请稍后重试")
	}
	if emailTaken {
		return nil, common.NewFieldError("参数校验失败", map[string]string{"email": "邮箱已被注册"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewInternalError("密码加密失败")
	}

	// 一次性验证令牌，验证成功后即作废
	verifyToken := strings.ReplaceAll(uuid.NewString(), "-", "")

	newUser := model.User{
		Username:          username,
		Email:             email,
		Password:          string(hashedPassword),
		EmailVerified:     false,
		VerificationToken: verifyToken,
	}

	if err := s.userStore.Create(&newUser); err != nil {
		return nil, common.NewInternalError("注册失败，请稍后重试")
	}

	verifyURL := fmt.Sprintf("%s/auth/verify-email?token=%s", s.baseURL(), verifyToken)
	if s.email.ShouldSendEmail() {
		go func() {
			_ = s.email.SendVerificationEmail(newUser.Email, newUser.Username, verifyURL)
		}()
	}

	return &newUser, nil
}

// VerifyEmail 用一次性令牌完成邮箱验证，成功后异步发送欢迎邮件
func (s *AuthService) VerifyEmail(token string) error {
	if token == "" {
		return common.NewValidationError("验证链接已失效或不正确")
	}

	user, err := s.userStore.FindByVerificationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewValidationError("验证链接已失效或不正确")
		}
		return common.NewInternalError("验证失败，请稍后重试")
	}

	if err := s.userStore.MarkVerified(user.ID); err != nil {
		return common.NewInternalError("验证失败，请稍后重试")
	}

	if s.email.ShouldSendEmail() {
		go func() {
			_ = s.email.SendWelcomeEmail(user.Email, user.Username)
		}()
	}

	return nil
}

// Login 执行登录鉴权并返回登录令牌。
// 未完成邮箱验证的账号拒绝登录。
func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	user, err := s.userStore.FindByEmail(email)
	if err != nil {
		return nil, "", common.NewUnauthorizedError("邮箱或密码错误")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", common.NewUnauthorizedError("邮箱或密码错误")
	}

	if !user.EmailVerified {
		return nil, "", common.NewForbiddenError("请先完成邮箱验证后再登录")
	}

	token, err := utils.GenerateLoginToken(user.ID, user.Username)
	if err != nil {
		return nil, "", common.NewInternalError("登录失败，请稍后重试")
	}

	return user, token, nil
}

// AdminLogin 管理员登录，独立于用户信任域
func (s *AuthService) AdminLogin(email, password string) (*model.Admin, string, error) {
	admin, err := s.adminStore.FindByEmail(email)
	if err != nil {
		return nil, "", common.NewUnauthorizedError("邮箱或密码错误")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, "", common.NewUnauthorizedError("邮箱或密码错误")
	}

	token, err := utils.GenerateAdminToken(admin.ID, admin.Username)
	if err != nil {
		return nil, "", common.NewInternalError("登录失败，请稍后重试")
	}

	return admin, token, nil
}

func (s *AuthService) baseURL() string {
	baseURL := s.settings.GetString(consts.ConfigBaseURL)
	if baseURL == "" {
		baseURL = "http://localhost"
	}
	return strings.TrimRight(baseURL, "/")
}
