package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/jerrry-dev/ailuminate-v2/internal/common"
	"github.com/jerrry-dev/ailuminate-v2/internal/consts"
	"github.com/jerrry-dev/ailuminate-v2/internal/model"
	"github.com/jerrry-dev/ailuminate-v2/internal/repository"
	"github.com/jerrry-dev/ailuminate-v2/internal/utils"
)

type ProfileService struct {
	userStore repository.UserStore
	articles  repository.ArticleStore
	settings  *SettingsService
}

func NewProfileService(userStore repository.UserStore, articles repository.ArticleStore, settings *SettingsService) *ProfileService {
	return &ProfileService{userStore: userStore, articles: articles, settings: settings}
}

// ProfileDetail 个人资料：用户信息附带其文章数
type ProfileDetail struct {
	*model.User
	ArticleCount int64 `json:"article_count"`
}

// ProfileUpdateInput 选择性更新，nil 字段保持原值
type ProfileUpdateInput struct {
	Name   *string
	Bio    *string
	Avatar *string
}

func (s *ProfileService) Get(userID uint) (*ProfileDetail, error) {
	user, err := s.userStore.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("用户不存在")
		}
		return nil, common.NewInternalError("资料获取失败，请稍后重试")
	}
	count, err := s.articles.Mirror().CountByAuthor(userID)
	if err != nil {
		return nil, common.NewInternalError("资料获取失败，请稍后重试")
	}
	return &ProfileDetail{User: user, ArticleCount: count}, nil
}

// Update 更新个人资料：昵称限50字符，简介限500字符，头像需为合法链接
func (s *ProfileService) Update(userID uint, input ProfileUpdateInput) (*ProfileDetail, error) {
	fields := map[string]string{}
	updates := map[string]interface{}{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if utf8.RuneCountInString(name) > 50 {
			fields["name"] = "昵称最长50个字符"
		} else {
			updates["name"] = name
		}
	}
	if input.Bio != nil {
		bio := strings.TrimSpace(*input.Bio)
		if utf8.RuneCountInString(bio) > 500 {
			fields["bio"] = "简介最长500个字符"
		} else {
			updates["bio"] = bio
		}
	}
	if input.Avatar != nil {
		avatar := strings.TrimSpace(*input.Avatar)
		if avatar != "" {
			if ok, msg := utils.ValidateURL(avatar); !ok {
				fields["avatar"] = msg
			}
		}
		if _, bad := fields["avatar"]; !bad {
			updates["avatar"] = avatar
		}
	}

	if len(fields) > 0 {
		return nil, common.NewFieldError("参数校验失败", fields)
	}

	if len(updates) > 0 {
		if err := s.userStore.UpdateByID(userID, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, common.NewNotFoundError("用户不存在")
			}
			return nil, common.NewInternalError("资料更新失败，请稍后重试")
		}
	}

	return s.Get(userID)
}

// Search 按用户名或昵称搜索用户，结果不包含查询者自己
func (s *ProfileService) Search(keyword string, requesterID uint) ([]model.UserSummary, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []model.UserSummary{}, nil
	}

	limit := s.settings.GetInt(consts.ConfigUserSearchLimit)
	if limit <= 0 {
		limit = 20
	}

	users, err := s.userStore.Search(keyword, requesterID, limit)
	if err != nil {
		return nil, common.NewInternalError("用户搜索失败，请稍后重试")
	}

	summaries := make([]model.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, u.Summary())
	}
	return summaries, nil
}
