package testutils

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/jerrry-dev/ailuminate-v2/internal/config"
	"github.com/jerrry-dev/ailuminate-v2/internal/model"
	"github.com/jerrry-dev/ailuminate-v2/internal/repository"
	"github.com/jerrry-dev/ailuminate-v2/internal/service"
)

var (
	testDBSeq      int64
	configInitOnce sync.Once
)

// InitTestConfig 加载默认配置（无配置文件，开发模式密钥），
// 供依赖 JWT 密钥的测试使用。
func InitTestConfig(t *testing.T) {
	t.Helper()
	configInitOnce.Do(func() {
		config.InitConfig(t.TempDir())
	})
}

// SetupDB 为每个测试建立独立的内存 SQLite 并完成迁移，连接由调用方注入仓储。
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	seq := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:alm_%d?mode=memory&cache=shared", seq)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := gdb.AutoMigrate(
		&model.User{},
		&model.Admin{},
		&model.Article{},
		&model.Message{},
		&model.File{},
		&model.Setting{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	return gdb
}

// SetupApp 组装完整的服务栈：内存 SQLite、内存文档库假实现、禁用的 Redis
func SetupApp(t *testing.T) (*service.AppService, *repository.Repositories) {
	t.Helper()

	InitTestConfig(t)

	gdb := SetupDB(t)
	docStore := NewFakeDocStore()
	repos := repository.NewRepositories(gdb, docStore)

	redisSvc := service.NewRedisService(config.Get().Redis)
	appService := service.NewAppService(repos, redisSvc)
	appService.Settings.InitializeSettings()

	return appService, repos
}
