package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/jerrry-dev/ailuminate-v2/internal/consts"
	"github.com/jerrry-dev/ailuminate-v2/internal/middleware"
	"github.com/jerrry-dev/ailuminate-v2/internal/model"
	"github.com/jerrry-dev/ailuminate-v2/internal/repository"
	"github.com/jerrry-dev/ailuminate-v2/internal/service"
	"github.com/jerrry-dev/ailuminate-v2/internal/testutils"
	"github.com/jerrry-dev/ailuminate-v2/internal/utils"
)

// testApp 聚合一套独立的测试环境：内存库、服务栈、处理器与认证中间件
type testApp struct {
	svc   *service.AppService
	repos *repository.Repositories
	h     *Handler
	auth  *middleware.AuthMiddleware
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, repos := testutils.SetupApp(t)
	return &testApp{
		svc:   svc,
		repos: repos,
		h:     NewHandler(svc),
		auth:  middleware.NewAuthMiddleware(repos.User, svc.Redis),
	}
}

// createUser 直接向库内写入用户，绕过注册接口
func (a *testApp) createUser(t *testing.T, username, email, password string, verified bool) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	user := &model.User{
		Username:      username,
		Email:         email,
		Password:      string(hashed),
		EmailVerified: verified,
	}
	if !verified {
		user.VerificationToken = "token_" + username
	}
	if err := a.repos.User.Create(user); err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}

func (a *testApp) createAdmin(t *testing.T, username, email, password string) *model.Admin {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	admin := &model.Admin{
		Username: username,
		Email:    email,
		Password: string(hashed),
	}
	if err := a.repos.Admin.Create(admin); err != nil {
		t.Fatalf("创建测试管理员失败: %v", err)
	}
	return admin
}

// loginCookie 为用户签发 auth_token Cookie
func loginCookie(t *testing.T, user *model.User) *http.Cookie {
	t.Helper()
	token, err := utils.GenerateLoginToken(user.ID, user.Username)
	if err != nil {
		t.Fatalf("签发用户令牌失败: %v", err)
	}
	return &http.Cookie{Name: consts.AuthCookieName, Value: token}
}

// adminCookie 为管理员签发 admin_token Cookie
func adminCookie(t *testing.T, admin *model.Admin) *http.Cookie {
	t.Helper()
	token, err := utils.GenerateAdminToken(admin.ID, admin.Username)
	if err != nil {
		t.Fatalf("签发管理员令牌失败: %v", err)
	}
	return &http.Cookie{Name: consts.AdminCookieName, Value: token}
}

// doJSON 发送 JSON 请求并返回响应记录器
func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("序列化请求体失败: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody 解析响应 JSON，失败直接终止测试
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("解析响应失败: %v body=%s", err, w.Body.String())
	}
	return body
}

// findCookie 从响应里找指定名字的 Set-Cookie
func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
