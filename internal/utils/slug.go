package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateSlug 由标题派生 URL 友好的 slug：
// 全部转小写，非字母数字的连续片段折叠为单个连字符，并去掉首尾连字符。
// 标题不含任何字母数字时返回随机串兜底。
func GenerateSlug(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return RandomSlugSuffix()
	}
	return slug
}

// RandomSlugSuffix 返回用于 slug 去重的随机短后缀
func RandomSlugSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// CalculateReadTime 按每分钟 200 词估算阅读时长，向上取整，至少 1 分钟
func CalculateReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 1
	}
	return (words + 199) / 200
}
