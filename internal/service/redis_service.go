package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jerrry-dev/ailuminate-v2/internal/config"
)

// RedisService 持有 Redis 客户端。未启用或连接失败时降级为内存模式，
// Client 返回 nil，调用方需自行回退。
type RedisService struct {
	client *redis.Client
	ready  bool
	prefix string
}

func NewRedisService(cfg config.RedisConfig) *RedisService {
	s := &RedisService{prefix: cfg.Prefix}
	if s.prefix == "" {
		s.prefix = "ailuminate"
	}

	if !cfg.Enabled {
		return s
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Printf("⚠️ Redis 不可用，降级为内存模式: %v", err)
		return s
	}

	s.client = client
	s.ready = true
	log.Printf("✅ Redis 已连接: %s (db=%d)", cfg.Addr, cfg.DB)
	return s
}

// Client 获取 Redis 客户端；当未启用或不可用时返回 nil。
func (s *RedisService) Client() *redis.Client {
	if !s.ready {
		return nil
	}
	return s.client
}

// Key 基于配置前缀拼接 Redis 键名。
func (s *RedisService) Key(parts ...string) string {
	if len(parts) == 0 {
		return s.prefix
	}
	key := s.prefix
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// Close 关闭 Redis 客户端连接。
func (s *RedisService) Close() error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("close redis failed: %w", err)
	}
	return nil
}
