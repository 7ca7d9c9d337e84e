package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jerrry-dev/ailuminate-v2/internal/config"
	"github.com/jerrry-dev/ailuminate-v2/internal/consts"
)

// LoginClaims 普通用户登录令牌的声明
type LoginClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// AdminClaims 管理员登录令牌的声明。
// 与用户令牌使用不同的 Type，两个信任域互不相通。
type AdminClaims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

func getSecret() []byte {
	return []byte(config.Get().JWT.Secret)
}

func tokenTTL() time.Duration {
	return time.Duration(config.Get().JWT.ExpirationHours) * time.Hour
}

// GenerateLoginToken 签发用户登录令牌
func GenerateLoginToken(userID uint, username string) (string, error) {
	now := time.Now()
	claims := LoginClaims{
		UserID:   userID,
		Username: username,
		Type:     consts.TokenTypeLogin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ailuminate-server",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL())),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getSecret())
}

// GenerateAdminToken 签发管理员登录令牌
func GenerateAdminToken(adminID uint, username string) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		AdminID:  adminID,
		Username: username,
		Type:     consts.TokenTypeAdminLogin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ailuminate-server",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL())),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getSecret())
}

// ParseLoginToken 解析并校验用户登录令牌
func ParseLoginToken(tokenString string) (*LoginClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &LoginClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("非预期的签名算法")
		}
		return getSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*LoginClaims)
	if !ok || !token.Valid {
		return nil, errors.New("无效的令牌")
	}
	if claims.Type != consts.TokenTypeLogin {
		return nil, errors.New("令牌类型不匹配")
	}
	return claims, nil
}

// ParseAdminToken 解析并校验管理员登录令牌
func ParseAdminToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("非预期的签名算法")
		}
		return getSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, errors.New("无效的令牌")
	}
	if claims.Type != consts.TokenTypeAdminLogin {
		return nil, errors.New("令牌类型不匹配")
	}
	return claims, nil
}
