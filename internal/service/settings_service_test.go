package service

import (
	"testing"

	"gorm.io/gorm"

	"github.com/jerrry-dev/ailuminate-v2/internal/consts"
	"github.com/jerrry-dev/ailuminate-v2/internal/model"
	"github.com/jerrry-dev/ailuminate-v2/internal/repository"
)

// memSettingStore 内存配置仓储，记录读取次数以验证缓存命中
type memSettingStore struct {
	settings map[string]model.Setting
	reads    int
}

func newMemSettingStore() *memSettingStore {
	return &memSettingStore{settings: make(map[string]model.Setting)}
}

func (m *memSettingStore) InitializeDefaults(defaults []model.Setting) error {
	for _, def := range defaults {
		if _, ok := m.settings[def.Key]; !ok {
			m.settings[def.Key] = def
		}
	}
	return nil
}

func (m *memSettingStore) FindByKey(key string) (*model.Setting, error) {
	m.reads++
	setting, ok := m.settings[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &setting, nil
}

func (m *memSettingStore) FindAll() ([]model.Setting, error) {
	out := make([]model.Setting, 0, len(m.settings))
	for _, s := range m.settings {
		out = append(out, s)
	}
	return out, nil
}

func (m *memSettingStore) UpdateSettings(items []repository.UpdateSettingItem, maskedValue string) error {
	for _, item := range items {
		current, ok := m.settings[item.Key]
		if ok && current.Sensitive && item.Value == maskedValue {
			continue
		}
		current.Key = item.Key
		current.Value = item.Value
		m.settings[item.Key] = current
	}
	return nil
}

// 测试内容：类型化读取与缺失键的行为。
func TestSettingsService_TypedGetters(t *testing.T) {
	store := newMemSettingStore()
	store.settings["int_key"] = model.Setting{Key: "int_key", Value: "42"}
	store.settings["float_key"] = model.Setting{Key: "float_key", Value: "0.5"}
	store.settings["bool_key"] = model.Setting{Key: "bool_key", Value: "true"}
	store.settings["bad_int"] = model.Setting{Key: "bad_int", Value: "abc"}

	svc := NewSettingsService(store)

	if got := svc.GetInt("int_key"); got != 42 {
		t.Fatalf("GetInt 期望 42，实际为 %d", got)
	}
	if got := svc.GetFloat64("float_key"); got != 0.5 {
		t.Fatalf("GetFloat64 期望 0.5，实际为 %v", got)
	}
	if !svc.GetBool("bool_key") {
		t.Fatal("GetBool 期望 true")
	}
	if got := svc.GetInt("bad_int"); got != 0 {
		t.Fatalf("非数字值期望 0，实际为 %d", got)
	}
	if got := svc.GetString("missing_key"); got != "" {
		t.Fatalf("缺失键期望空串，实际为 %q", got)
	}
}

// 测试内容：库中缺失时回退默认配置表。
func TestSettingsService_DefaultFallback(t *testing.T) {
	svc := NewSettingsService(newMemSettingStore())

	if got := svc.GetString(consts.ConfigSiteName); got != "Ailuminate" {
		t.Fatalf("期望回退默认站名，实际为 %q", got)
	}
	if !svc.GetBool(consts.ConfigAllowSignup) {
		t.Fatal("注册开关默认应为 true")
	}
}

// 测试内容：读取结果进缓存，Update 之后缓存失效。
func TestSettingsService_Cache(t *testing.T) {
	store := newMemSettingStore()
	store.settings["k"] = model.Setting{Key: "k", Value: "v1"}
	svc := NewSettingsService(store)

	if got := svc.GetString("k"); got != "v1" {
		t.Fatalf("期望 v1，实际为 %q", got)
	}
	reads := store.reads
	if got := svc.GetString("k"); got != "v1" {
		t.Fatalf("期望 v1，实际为 %q", got)
	}
	if store.reads != reads {
		t.Fatalf("第二次读取应命中缓存，仓储读取次数 %d -> %d", reads, store.reads)
	}

	if err := svc.Update(map[string]string{"k": "v2"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := svc.GetString("k"); got != "v2" {
		t.Fatalf("更新后期望 v2，实际为 %q", got)
	}
}

// 测试内容：敏感配置在列表输出时脱敏。
func TestSettingsService_ListMasked(t *testing.T) {
	store := newMemSettingStore()
	store.settings["secret"] = model.Setting{Key: "secret", Value: "real-value", Sensitive: true}
	store.settings["plain"] = model.Setting{Key: "plain", Value: "visible"}
	svc := NewSettingsService(store)

	settings, err := svc.ListMasked()
	if err != nil {
		t.Fatalf("ListMasked: %v", err)
	}
	for _, s := range settings {
		if s.Key == "secret" && s.Value != MaskedSettingValue {
			t.Fatalf("敏感项应脱敏，实际为 %q", s.Value)
		}
		if s.Key == "plain" && s.Value != "visible" {
			t.Fatalf("普通项不应脱敏，实际为 %q", s.Value)
		}
	}

	// 把占位值提交回来时敏感项保持原值
	if err := svc.Update(map[string]string{"secret": MaskedSettingValue}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	stored := store.settings["secret"]
	if stored.Value != "real-value" {
		t.Fatalf("脱敏占位值不应覆盖真实值，实际为 %q", stored.Value)
	}
}

var _ repository.SettingStore = (*memSettingStore)(nil)
