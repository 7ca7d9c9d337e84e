package service

import (
	"log"
	"strconv"
	"sync"

	"github.com/jerrry-dev/ailuminate-v2/internal/consts"
	"github.com/jerrry-dev/ailuminate-v2/internal/model"
	"github.com/jerrry-dev/ailuminate-v2/internal/repository"
)

const DefaultValueNotFound = "||__NOT_FOUND__||"

// MaskedSettingValue 敏感配置对外展示时的占位值
const MaskedSettingValue = "********"

var DefaultSettings = []model.Setting{
	{Key: consts.ConfigSiteName, Value: "Ailuminate", Desc: "网站名称"},
	{Key: consts.ConfigSiteDescription, Value: "A place to write and talk", Desc: "网站描述"},
	{Key: consts.ConfigBaseURL, Value: "http://localhost:8080", Desc: "站点对外基础 URL"},
	{Key: consts.ConfigAllowSignup, Value: "true", Desc: "是否开放注册 (true/false)"},
	{Key: consts.ConfigEnableSMTP, Value: "false", Desc: "是否启用邮件发送"},
	{Key: consts.ConfigRateLimitEnabled, Value: "true", Desc: "是否开启接口限流"},
	{Key: consts.ConfigRateLimitAuthRPS, Value: "0.5", Desc: "认证接口每秒请求限制 (RPS)"},
	{Key: consts.ConfigRateLimitAuthBurst, Value: "2", Desc: "认证接口突发请求限制"},
	{Key: consts.ConfigMaxRequestBodySize, Value: "2", Desc: "接口最大请求体限制 (MB)"},
	{Key: consts.ConfigUserSearchLimit, Value: "20", Desc: "用户搜索单次返回上限"},
}

// SettingsService 动态配置读写，读路径走 sync.Map 缓存
type SettingsService struct {
	store repository.SettingStore
	cache sync.Map
}

func NewSettingsService(store repository.SettingStore) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) ClearCache() {
	s.cache.Range(func(key, value interface{}) bool {
		s.cache.Delete(key)
		return true
	})
}

func (s *SettingsService) InitializeSettings() {
	if err := s.store.InitializeDefaults(DefaultSettings); err != nil {
		log.Printf("⚠️ 初始化默认配置失败: %v", err)
	}
}

func (s *SettingsService) GetString(key string) string {
	if val, ok := s.cache.Load(key); ok {
		strVal, ok := val.(string)
		if !ok {
			s.cache.Delete(key)
		} else {
			if strVal == DefaultValueNotFound {
				return ""
			}
			return strVal
		}
	}

	setting, err := s.store.FindByKey(key)
	if err != nil {
		// 数据库没查到，回退默认配置表
		for _, def := range DefaultSettings {
			if def.Key == key {
				s.cache.Store(key, def.Value)
				return def.Value
			}
		}

		// 没查到，往缓存里存 DefaultValueNotFound 标记
		s.cache.Store(key, DefaultValueNotFound)
		return ""
	}

	s.cache.Store(key, setting.Value)
	return setting.Value
}

func (s *SettingsService) GetInt(key string) int {
	valStr := s.GetString(key)
	if valStr == "" {
		return 0
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0
	}
	return val
}

func (s *SettingsService) GetFloat64(key string) float64 {
	valStr := s.GetString(key)
	if valStr == "" {
		return 0
	}

	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return 0
	}
	return val
}

func (s *SettingsService) GetBool(key string) bool {
	valStr := s.GetString(key)
	if valStr == "" {
		return false
	}

	// ParseBool 支持 "1", "t", "T", "true", "TRUE", "True"
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false
	}
	return val
}

// ListMasked 列出全部配置项，敏感项的值替换为占位值
func (s *SettingsService) ListMasked() ([]model.Setting, error) {
	settings, err := s.store.FindAll()
	if err != nil {
		return nil, err
	}
	for i := range settings {
		if settings[i].Sensitive {
			settings[i].Value = MaskedSettingValue
		}
	}
	return settings, nil
}

// Update 批量更新配置并清空缓存
func (s *SettingsService) Update(items map[string]string) error {
	updates := make([]repository.UpdateSettingItem, 0, len(items))
	for k, v := range items {
		updates = append(updates, repository.UpdateSettingItem{Key: k, Value: v})
	}
	if err := s.store.UpdateSettings(updates, MaskedSettingValue); err != nil {
		return err
	}
	s.ClearCache()
	return nil
}
