package utils

import "testing"

// 测试内容：验证 slug 派生的小写、折叠与去边规则。
func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Go & Gin!! Tips", "go-gin-tips"},
		{"  --Already--Hyphenated--  ", "already-hyphenated"},
		{"UPPER case 123", "upper-case-123"},
		{"multiple   spaces", "multiple-spaces"},
	}
	for _, c := range cases {
		if got := GenerateSlug(c.in); got != c.want {
			t.Fatalf("GenerateSlug(%q) 期望 %q，实际为 %q", c.in, c.want, got)
		}
	}
}

// 测试内容：标题完全没有字母数字时回退为随机串。
func TestGenerateSlug_Fallback(t *testing.T) {
	got := GenerateSlug("！！！###")
	if got == "" {
		t.Fatal("期望得到非空的兜底 slug")
	}
	if len(got) != 8 {
		t.Fatalf("期望8位随机串，实际为 %q", got)
	}
}

// 测试内容：随机后缀长度固定且两次调用不同。
func TestRandomSlugSuffix(t *testing.T) {
	a := RandomSlugSuffix()
	b := RandomSlugSuffix()
	if len(a) != 8 || len(b) != 8 {
		t.Fatalf("期望8位后缀，实际为 %q %q", a, b)
	}
	if a == b {
		t.Fatal("期望两次后缀不同")
	}
}

// 测试内容：阅读时长按每分钟200词向上取整，至少1分钟。
func TestCalculateReadTime(t *testing.T) {
	cases := []struct {
		words int
		want  int
	}{
		{0, 1},
		{1, 1},
		{200, 1},
		{201, 2},
		{400, 2},
		{1000, 5},
	}
	for _, c := range cases {
		content := ""
		for i := 0; i < c.words; i++ {
			content += "word "
		}
		if got := CalculateReadTime(content); got != c.want {
			t.Fatalf("%d 词期望 %d 分钟，实际为 %d", c.words, c.want, got)
		}
	}
}
