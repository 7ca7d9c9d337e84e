package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/consts"
)

func newAuthRouter(app *testApp) *gin.Engine {
	r := gin.New()
	r.POST("/api/auth/signup", app.h.Signup)
	r.POST("/api/auth/login", app.h.Login)
	r.POST("/api/auth/logout", app.h.Logout)
	r.POST("/api/auth/verify-email", app.h.VerifyEmail)
	r.POST("/api/admin/login", app.h.AdminLogin)
	return r
}

// 测试内容：注册成功返回201，新用户未验证且持有一次性验证令牌。
func TestSignup_Success(t *testing.T) {
	app := setupTestApp(t)
	r := newAuthRouter(app)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "Passw0rd123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际为 %d body=%s", w.Code, w.Body.String())
	}

	user, err := app.repos.User.FindByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("注册后查不到用户: %v", err)
	}
	if user.EmailVerified {
		t.Fatal("新注册用户不应处于已验证状态")
	}
	if user.VerificationToken == "" {
		t.Fatal("新注册用户应持有验证令牌")
	}
	if user.Password == "Passw0rd123" {
		t.Fatal("密码不应明文入库")
	}
}

// 测试内容：非法的用户名、邮箱、密码一次性全部返回字段级错误。
func TestSignup_FieldValidation(t *testing.T) {
	app := setupTestApp(t)
	r := newAuthRouter(app)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", gin.H{
		"username": "a",
		"email":    "not-an-email",
		"password": "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d body=%s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	details, ok := body["details"].(map[string]interface{})
	if !ok {
		t.Fatalf("期望 details 字段，实际 body=%s", w.Body.String())
	}
	for _, field := range []string{"username", "email", "password"} {
		if _, ok := details[field]; !ok {
			t.Fatalf("details 缺少 %s 字段: %v", field, details)
		}
	}
}

// 测试内容：重复的用户名或邮箱返回400并指明冲突字段。
func TestSignup_Duplicate(t *testing.T) {
	app := setupTestApp(t)
	r := newAuthRouter(app)
	app.createUser(t, "alice", "alice@example.com", "Passw0rd123", true)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", gin.H{
		"username": "alice",
		"email":    "other@example.com",
		"password": "Passw0rd123",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("重复用户名期望 400，实际为 %d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	details, _ := body["details"].(map[string]interface{})
	if _, ok := details["username"]; !ok {
		t.Fatalf("期望 username 冲突提示，实际 body=%s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/signup", gin.H{
		"username": "bob",
		"email":    "alice@example.com",
		"password": "Passw0rd123",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("重复邮箱期望 400，实际为 %d body=%s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	details, _ = body["details"].(map[string]interface{})
	if _, ok := details["email"]; !ok {
		t.Fatalf("期望 email 冲突提示，实际 body=%s", w.Body.String())
	}
}

// 测试内容：关闭注册开关后注册返回403。
func TestSignup_Disabled(t *testing.T) {
	app := setupTestApp(t)
	r := newAuthRouter(app)

	if err := app.svc.Settings.Update(map[string]string{consts.ConfigAllowSignup: "false"}); err != nil {
		t.Fatalf("更新配置失败: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "Passw0rd123",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("期望 403，实际为 %d body=%s", w.Code, w.Body.String())
	}
}

// 测试内容：登录成功写入 auth_token Cookie，错误密码与未知邮箱返回401。
func TestLogin(t *testing.T) {
	app := setupTestApp(t)
	r := newAuthRouter(app)
	app.createUser(t, "alice", "alice@example.com", "Passw0rd123", true)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "Passw0rd123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	cookie := findCookie(w, consts.AuthCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("登录成功应写入 auth_token Cookie")
	}
	if !cookie.HttpOnly {
		t.Fatal("会话 Cookie 必须为 HttpOnly")
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "WrongPass123",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("错误密码期望 401，实际为 %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "Passw0rd123",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("未知邮箱期望 401，实际为 %d body=%s", w.Code, w.Body.String())
	}
}

// 测试内容：未验证邮箱的账号即使密码正确也拒绝登录。
func TestLogin_Unverified(t *testing.T) {
	app := setupTestApp(t)
	r := newAuthRouter(app)
	app.createUser(t, "bob", "bob@example.com", "Passw0rd123", false)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "bob@example.com",
		"password": "Passw0rd123",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("期望 403，实际为 %d body=%s", w.Code, w.Body.String())
	}
}

// 测试内容：邮箱验证完整闭环，令牌一次性使用，验证后可登录。
func TestVerifyEmail_Flow(t *testing.T) {
	app := setupTestApp(t)
	r := newAuthRouter(app)
	user := app.createUser(t, "carol", "carol@example.com", "Passw0rd123", false)

	w := doJSON(t, r, http.MethodPost, "/api/auth/verify-email", gin.H{
		"token": user.VerificationToken,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}

	verified, err := app.repos.User.FindByID(user.ID)
	if err != nil {
		t.Fatalf("验证后查不到用户: %v", err)
	}
	if !verified.EmailVerified {
		t.Fatal("验证后应标记为已验证")
	}
	if verified.VerificationToken != "" {
		t.Fatal("验证令牌应在使用后清空")
	}

	// 同一令牌不能再次使用
	w = doJSON(t, r, http.MethodPost, "/api/auth/verify-email", gin.H{
		"token": user.VerificationToken,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("复用令牌期望 400，实际为 %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "carol@example.com",
		"password": "Passw0rd123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("验证后登录期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
}

// 测试内容：无效验证令牌返回400。
func TestVerifyEmail_InvalidToken(t *testing.T) {
	app := setupTestApp(t)
	r := newAuthRouter(app)

	w := doJSON(t, r, http.MethodPost, "/api/auth/verify-email", gin.H{
		"token": "no-such-token",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d body=%s", w.Code, w.Body.String())
	}
}

// 测试内容：管理员登录写入 admin_token Cookie，错误凭证返回401。
func TestAdminLogin(t *testing.T) {
	app := setupTestApp(t)
	r := newAuthRouter(app)
	app.createAdmin(t, "root", "root@example.com", "AdminPass123")

	w := doJSON(t, r, http.MethodPost, "/api/admin/login", gin.H{
		"email":    "root@example.com",
		"password": "AdminPass123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	cookie := findCookie(w, consts.AdminCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("管理员登录应写入 admin_token Cookie")
	}

	w = doJSON(t, r, http.MethodPost, "/api/admin/login", gin.H{
		"email":    "root@example.com",
		"password": "WrongPass123",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("错误密码期望 401，实际为 %d body=%s", w.Code, w.Body.String())
	}
}

// 测试内容：请求体缺字段时直接返回400。
func TestLogin_BindError(t *testing.T) {
	app := setupTestApp(t)
	r := newAuthRouter(app)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{"email": "alice@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d body=%s", w.Code, w.Body.String())
	}
}
