package config

import (
	"os"
	"path/filepath"
	"testing"
)

// 测试内容：没有配置文件时使用内置默认值，开发模式回退默认密钥。
func TestInitConfig_Defaults(t *testing.T) {
	InitConfig(t.TempDir())

	cfg := Get()
	if cfg.Server.Port != "8080" {
		t.Fatalf("默认端口期望 8080，实际为 %q", cfg.Server.Port)
	}
	if cfg.Server.Mode != "debug" {
		t.Fatalf("默认模式期望 debug，实际为 %q", cfg.Server.Mode)
	}
	if cfg.Database.Type != "sqlite" {
		t.Fatalf("默认数据库期望 sqlite，实际为 %q", cfg.Database.Type)
	}
	if cfg.JWT.Secret != "ailuminate_secret" {
		t.Fatalf("开发模式应回退默认密钥，实际为 %q", cfg.JWT.Secret)
	}
	if cfg.JWT.ExpirationHours != 168 {
		t.Fatalf("登录态有效期默认 168 小时，实际为 %d", cfg.JWT.ExpirationHours)
	}
	if cfg.Redis.Enabled {
		t.Fatal("Redis 默认应为关闭")
	}
}

// 测试内容：配置文件中的值覆盖默认值。
func TestInitConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
server:
  port: "9000"
jwt:
  secret: file_secret
mongo:
  name: testdb
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644); err != nil {
		t.Fatalf("写配置文件失败: %v", err)
	}

	InitConfig(dir)

	cfg := Get()
	if cfg.Server.Port != "9000" {
		t.Fatalf("端口期望 9000，实际为 %q", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "file_secret" {
		t.Fatalf("密钥期望 file_secret，实际为 %q", cfg.JWT.Secret)
	}
	if cfg.Mongo.Name != "testdb" {
		t.Fatalf("文档库名期望 testdb，实际为 %q", cfg.Mongo.Name)
	}
	if GetConfigDir() != dir {
		t.Fatalf("配置目录期望 %q，实际为 %q", dir, GetConfigDir())
	}
}

// 测试内容：AILUMINATE_ 前缀的环境变量覆盖配置文件与默认值。
func TestInitConfig_EnvOverride(t *testing.T) {
	t.Setenv("AILUMINATE_SERVER_PORT", "7070")
	t.Setenv("AILUMINATE_JWT_SECRET", "env_secret")

	InitConfig(t.TempDir())

	cfg := Get()
	if cfg.Server.Port != "7070" {
		t.Fatalf("环境变量覆盖端口期望 7070，实际为 %q", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "env_secret" {
		t.Fatalf("环境变量覆盖密钥期望 env_secret，实际为 %q", cfg.JWT.Secret)
	}
}
