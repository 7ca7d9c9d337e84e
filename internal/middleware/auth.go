package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/consts"
	"github.com/jerrry-dev/ailuminate-v2/internal/repository"
	"github.com/jerrry-dev/ailuminate-v2/internal/service"
	"github.com/jerrry-dev/ailuminate-v2/internal/utils"
)

const (
	CtxUserID    = "user_id"
	CtxUsername  = "username"
	CtxAdminID   = "admin_id"
	CtxAdminFlag = "is_admin"
)

const userCacheTTL = 1 * time.Minute

type cachedUserState struct {
	Exists    bool
	ExpiresAt time.Time
}

// AuthMiddleware 基于 Cookie 的认证守卫。
// 用户令牌和管理员令牌位于两个互不相通的信任域。
type AuthMiddleware struct {
	users repository.UserStore
	redis *service.RedisService
	cache sync.Map
}

func NewAuthMiddleware(users repository.UserStore, redis *service.RedisService) *AuthMiddleware {
	return &AuthMiddleware{users: users, redis: redis}
}

// ClearUserCache 清除指定用户的存在性缓存
func (m *AuthMiddleware) ClearUserCache(userID uint) {
	m.cache.Delete(userID)

	if client := m.redis.Client(); client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		key := m.redis.Key("auth", "user_exists", strconv.FormatUint(uint64(userID), 10))
		_ = client.Del(ctx, key).Err()
	}
}

// UserRequired 校验 auth_token Cookie，失败返回 401 JSON
func (m *AuthMiddleware) UserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(consts.AuthCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
			c.Abort()
			return
		}

		claims, err := utils.ParseLoginToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "登录状态无效或已过期"})
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Next()
	}
}

// UserCheck 确认令牌对应的账号仍然存在。
// 优先读 Redis，其次本地缓存，最后回源数据库。
func (m *AuthMiddleware) UserCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(CtxUserID)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户信息"})
			c.Abort()
			return
		}
		uid, ok := value.(uint)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的用户ID类型"})
			c.Abort()
			return
		}

		var (
			userExists bool
			stateFound bool
		)

		if client := m.redis.Client(); client != nil {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			key := m.redis.Key("auth", "user_exists", strconv.FormatUint(uint64(uid), 10))
			cached, err := client.Get(ctx, key).Result()
			if err == nil {
				userExists = cached == "1"
				stateFound = true
				m.cache.Store(uid, cachedUserState{
					Exists:    userExists,
					ExpiresAt: time.Now().Add(userCacheTTL),
				})
			}
		}

		// Redis 未命中或不可用时，回退本地内存缓存
		if !stateFound {
			if val, ok := m.cache.Load(uid); ok {
				cached, typeOk := val.(cachedUserState)
				if typeOk {
					if time.Now().Before(cached.ExpiresAt) {
						userExists = cached.Exists
						stateFound = true
					} else {
						m.cache.Delete(uid)
					}
				}
			}
		}

		if !stateFound {
			_, err := m.users.FindByID(uid)
			userExists = err == nil

			m.cache.Store(uid, cachedUserState{
				Exists:    userExists,
				ExpiresAt: time.Now().Add(userCacheTTL),
			})

			if client := m.redis.Client(); client != nil {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()

				key := m.redis.Key("auth", "user_exists", strconv.FormatUint(uint64(uid), 10))
				val := "0"
				if userExists {
					val = "1"
				}
				_ = client.Set(ctx, key, val, userCacheTTL).Err()
			}
		}

		if !userExists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "账号不存在或已注销"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminRequired 校验 admin_token Cookie。
// 用户令牌在这里无效，反之亦然。
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(consts.AdminCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "需要管理员登录才能访问"})
			c.Abort()
			return
		}

		claims, err := utils.ParseAdminToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "管理员登录状态无效或已过期"})
			c.Abort()
			return
		}

		c.Set(CtxAdminID, claims.AdminID)
		c.Set(CtxAdminFlag, true)
		c.Next()
	}
}

// Identify 尽力解析两种 Cookie 并写入上下文，不拦截请求。
// 用于作者或管理员均可操作的接口，由处理器自行判定权限。
func (m *AuthMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(consts.AuthCookieName); err == nil && token != "" {
			if claims, err := utils.ParseLoginToken(token); err == nil {
				c.Set(CtxUserID, claims.UserID)
				c.Set(CtxUsername, claims.Username)
			}
		}
		if token, err := c.Cookie(consts.AdminCookieName); err == nil && token != "" {
			if claims, err := utils.ParseAdminToken(token); err == nil {
				c.Set(CtxAdminID, claims.AdminID)
				c.Set(CtxAdminFlag, true)
			}
		}
		c.Next()
	}
}

// CurrentUserID 从上下文取当前用户 ID，未登录时第二个返回值为 false
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(CtxUserID)
	if !exists {
		return 0, false
	}
	uid, ok := value.(uint)
	return uid, ok
}

// IsAdminRequest 判断上下文是否携带有效管理员身份
func IsAdminRequest(c *gin.Context) bool {
	value, exists := c.Get(CtxAdminFlag)
	if !exists {
		return false
	}
	flag, ok := value.(bool)
	return ok && flag
}
