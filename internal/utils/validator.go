package utils

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidateUsername checks if the username meets the requirements.
func ValidateUsername(username string) (bool, string) {
	if len(username) < 3 || len(username) > 30 {
		return false, "用户名长度需在3到30位之间"
	}

	// 允许英文大小写、数字和下划线
	if !usernameRegex.MatchString(username) {
		return false, "用户名只能包含英文大小写、数字和下划线"
	}

	return true, ""
}

// ValidatePassword checks if the password meets the requirements.
// Returns true if valid, otherwise false and an error message.
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "密码最少8位"
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return false, "密码必须同时包含大写字母、小写字母和数字"
	}

	return true, ""
}

// ValidateEmail checks the email address format.
func ValidateEmail(email string) (bool, string) {
	if email == "" || len(email) > 254 {
		return false, "邮箱格式不正确"
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false, "邮箱格式不正确"
	}
	// 拒绝带显示名的形式，只接受纯地址
	if addr.Address != email {
		return false, "邮箱格式不正确"
	}
	return true, ""
}

// ValidateURL checks that the value is an http/https link.
func ValidateURL(raw string) (bool, string) {
	if raw == "" {
		return false, "链接不能为空"
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false, "链接格式不正确"
	}
	return true, ""
}

// ContainsCRLF 检查字符串是否含有换行符，用于拒绝邮件头注入
func ContainsCRLF(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}
