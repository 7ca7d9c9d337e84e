package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jerrry-dev/ailuminate-v2/internal/consts"
	"github.com/jerrry-dev/ailuminate-v2/internal/model"
	"github.com/jerrry-dev/ailuminate-v2/internal/service"
)

func newArticleRouter(app *testApp) *gin.Engine {
	r := gin.New()
	api := r.Group("/api")

	api.GET("/articles", app.auth.Identify(), app.h.ListArticles)
	api.GET("/articles/:id", app.h.GetArticle)
	api.GET("/articles/:id/comments", app.h.ListComments)
	api.DELETE("/articles/:id", app.auth.Identify(), app.h.DeleteArticle)

	authed := api.Group("")
	authed.Use(app.auth.UserRequired(), app.auth.UserCheck())
	authed.POST("/articles", app.h.CreateArticle)
	authed.PUT("/articles/:id", app.h.UpdateArticle)
	authed.POST("/articles/:id/like", app.h.ToggleLike)
	authed.POST("/articles/:id/comments", app.h.AddComment)

	return r
}

var testArticleContent = strings.Repeat("正文内容足够长可以通过校验。", 10)

// createArticle 经服务层直接落库一篇文章
func createArticle(t *testing.T, app *testApp, authorID uint, title, status string) *model.ArticleDoc {
	t.Helper()
	doc, err := app.svc.Article.Create(context.Background(), authorID, service.ArticleInput{
		Title:   &title,
		Content: &testArticleContent,
		Status:  &status,
	})
	if err != nil {
		t.Fatalf("创建测试文章失败: %v", err)
	}
	return doc
}

// 测试内容：创建文章成功返回201，默认草稿状态并自动生成摘要与阅读时长。
func TestCreateArticle(t *testing.T) {
	app := setupTestApp(t)
	r := newArticleRouter(app)
	user := app.createUser(t, "alice", "alice@example.com", "Passw0rd123", true)

	w := doJSON(t, r, http.MethodPost, "/api/articles", gin.H{
		"title":   "我的第一篇文章",
		"content": testArticleContent,
		"tags":    []string{"go", "web"},
	}, loginCookie(t, user))
	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际为 %d body=%s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	article, ok := body["article"].(map[string]interface{})
	if !ok {
		t.Fatalf("响应缺少 article: %s", w.Body.String())
	}
	if article["status"] != consts.ArticleStatusDraft {
		t.Fatalf("缺省状态期望 draft，实际为 %v", article["status"])
	}
	if excerpt, _ := article["excerpt"].(string); excerpt == "" {
		t.Fatal("未传摘要时应从正文自动截取")
	}
	if rt, _ := article["read_time"].(float64); rt < 1 {
		t.Fatalf("阅读时长至少为1分钟，实际为 %v", article["read_time"])
	}

	// 投影同步到关系库
	mirrored, total, err := app.repos.Article.Mirror().List(consts.ArticleStatusDraft, user.ID, "", 0, 10)
	if err != nil {
		t.Fatalf("查询文章投影失败: %v", err)
	}
	if total != 1 || len(mirrored) != 1 {
		t.Fatalf("投影数量期望 1，实际 total=%d len=%d", total, len(mirrored))
	}
}

// 测试内容：标题、正文、标签数量的边界校验。
func TestCreateArticle_Validation(t *testing.T) {
	app := setupTestApp(t)
	r := newArticleRouter(app)
	user := app.createUser(t, "alice", "alice@example.com", "Passw0rd123", true)
	cookie := loginCookie(t, user)

	// 标题4个字符，低于下限
	w := doJSON(t, r, http.MethodPost, "/api/articles", gin.H{
		"title":   "四字标题",
		"content": testArticleContent,
	}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("短标题期望 400，实际为 %d body=%s", w.Code, w.Body.String())
	}

	// 标题101个字符，超过上限
	w = doJSON(t, r, http.MethodPost, "/api/articles", gin.H{
		"title":   strings.Repeat("长", 101),
		"content": testArticleContent,
	}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("超长标题期望 400，实际为 %d body=%s", w.Code, w.Body.String())
	}

	// 标题恰好100个字符，处于上限内
	w = doJSON(t, r, http.MethodPost, "/api/articles", gin.H{
		"title":   strings.Repeat("长", 100),
		"content": testArticleContent,
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("100字标题期望 201，实际为 %d body=%s", w.Code, w.Body.String())
	}

	// 正文不足50字符
	w = doJSON(t, r, http.MethodPost, "/api/articles", gin.H{
		"title":   "标题长度合法的文章",
		"content": "太短",
	}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("短正文期望 400，实际为 %d body=%s", w.Code, w.Body.String())
	}

	// 标签超过5个
	w = doJSON(t, r, http.MethodPost, "/api/articles", gin.H{
		"title":   "标题长度合法的文章",
		"content": testArticleContent,
		"tags":    []string{"a", "b", "c", "d", "e", "f"},
	}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("标签过多期望 400，实际为 %d body=%s", w.Code, w.Body.String())
	}

	// 未登录直接401
	w = doJSON(t, r, http.MethodPost, "/api/articles", gin.H{
		"title":   "标题长度合法的文章",
		"content": testArticleContent,
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("未登录期望 401，实际为 %d body=%s", w.Code, w.Body.String())
	}
}

// 测试内容：同标题文章的 slug 追加随机后缀去重。
func TestCreateArticle_SlugCollision(t *testing.T) {
	app := setupTestApp(t)
	user := app.createUser(t, "alice", "alice@example.com", "Passw0rd123", true)

	first := createArticle(t, app, user.ID, "Duplicate Title Here", consts.ArticleStatusPublished)
	second := createArticle(t, app, user.ID, "Duplicate Title Here", consts.ArticleStatusPublished)

	if first.Slug == second.Slug {
		t.Fatalf("slug 不应重复: %q", first.Slug)
	}
	if !strings.HasPrefix(second.Slug, first.Slug+"-") {
		t.Fatalf("冲突 slug 应为原 slug 加后缀，实际为 %q", second.Slug)
	}
}

// 测试内容：文档 ID 与 slug 均可取到同一篇文章，且每次读取浏览数加一。
func TestGetArticle_ByIDAndSlug(t *testing.T) {
	app := setupTestApp(t)
	r := newArticleRouter(app)
	user := app.createUser(t, "alice", "alice@example.com", "Passw0rd123", true)
	doc := createArticle(t, app, user.ID, "浏览计数测试文章", consts.ArticleStatusPublished)

	w := doJSON(t, r, http.MethodGet, "/api/articles/"+doc.ID.Hex(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("按 ID 获取期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if vc, _ := body["view_count"].(float64); vc != 1 {
		t.Fatalf("首次读取浏览数期望 1，实际为 %v", body["view_count"])
	}

	w = doJSON(t, r, http.MethodGet, "/api/articles/"+doc.Slug, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("按 slug 获取期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	article, _ := body["article"].(map[string]interface{})
	if article["slug"] != doc.Slug {
		t.Fatalf("两种方式应取到同一篇文章，实际 slug=%v", article["slug"])
	}
	if vc, _ := body["view_count"].(float64); vc != 2 {
		t.Fatalf("第二次读取浏览数期望 2，实际为 %v", body["view_count"])
	}

	w = doJSON(t, r, http.MethodGet, "/api/articles/no-such-article", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("不存在的文章期望 404，实际为 %d body=%s", w.Code, w.Body.String())
	}
}

// 测试内容：只有作者本人能编辑，标题变化才重新派生 slug。
func TestUpdateArticle(t *testing.T) {
	app := setupTestApp(t)
	r := newArticleRouter(app)
	author := app.createUser(t, "alice", "alice@example.com", "Passw0rd123", true)
	other := app.createUser(t, "bob", "bob@example.com", "Passw0rd123", true)
	doc := createArticle(t, app, author.ID, "原始标题的文章", consts.ArticleStatusDraft)

	// 他人编辑返回403
	w := doJSON(t, r, http.MethodPut, "/api/articles/"+doc.ID.Hex(), gin.H{
		"content": testArticleContent + "补充",
	}, loginCookie(t, other))
	if w.Code != http.StatusForbidden {
		t.Fatalf("他人编辑期望 403，实际为 %d body=%s", w.Code, w.Body.String())
	}

	// 仅改正文，slug 保持不变
	w = doJSON(t, r, http.MethodPut, "/api/articles/"+doc.ID.Hex(), gin.H{
		"content": testArticleContent + "补充内容",
	}, loginCookie(t, author))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	article, _ := body["article"].(map[string]interface{})
	if article["slug"] != doc.Slug {
		t.Fatalf("正文修改不应改变 slug，实际为 %v", article["slug"])
	}

	// 改标题，slug 重新派生
	w = doJSON(t, r, http.MethodPut, "/api/articles/"+doc.ID.Hex(), gin.H{
		"title": "换了一个新标题",
	}, loginCookie(t, author))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	article, _ = body["article"].(map[string]interface{})
	if article["slug"] == doc.Slug {
		t.Fatal("标题修改后 slug 应重新派生")
	}
}

// 测试内容：发布是单向的，已发布文章不能退回草稿。
func TestUpdateArticle_PublishedIsFinal(t *testing.T) {
	app := setupTestApp(t)
	r := newArticleRouter(app)
	author := app.createUser(t, "alice", "alice@example.com", "Passw0rd123", true)
	doc := createArticle(t, app, author.ID, "已经发布的文章", consts.ArticleStatusPublished)

	w := doJSON(t, r, http.MethodPut, "/api/articles/"+doc.ID.Hex(), gin.H{
		"status": consts.ArticleStatusDraft,
	}, loginCookie(t, author))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("退回草稿期望 400，实际为 %d body=%s", w.Code, w.Body.String())
	}

	// 草稿可以正常发布
	draft := createArticle(t, app, author.ID, "仍是草稿的文章", consts.ArticleStatusDraft)
	w = doJSON(t, r, http.MethodPut, "/api/articles/"+draft.ID.Hex(), gin.H{
		"status": consts.ArticleStatusPublished,
	}, loginCookie(t, author))
	if w.Code != http.StatusOK {
		t.Fatalf("发布草稿期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
}

// 测试内容：删除权限矩阵，未登录401、他人403、作者与管理员可删。
func TestDeleteArticle(t *testing.T) {
	app := setupTestApp(t)
	r := newArticleRouter(app)
	author := app.createUser(t, "alice", "alice@example.com", "Passw0rd123", true)
	other := app.createUser(t, "bob", "bob@example.com", "Passw0rd123", true)
	admin := app.createAdmin(t, "root", "root@example.com", "AdminPass123")

	doc := createArticle(t, app, author.ID, "等待删除的文章", consts.ArticleStatusPublished)

	w := doJSON(t, r, http.MethodDelete, "/api/articles/"+doc.ID.Hex(), nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("未登录期望 401，实际为 %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/api/articles/"+doc.ID.Hex(), nil, loginCookie(t, other))
	if w.Code != http.StatusForbidden {
		t.Fatalf("他人删除期望 403，实际为 %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/api/articles/"+doc.ID.Hex(), nil, loginCookie(t, author))
	if w.Code != http.StatusOK {
		t.Fatalf("作者删除期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}

	// 管理员 Cookie 可删除任何文章
	doc2 := createArticle(t, app, author.ID, "管理员删除的文章", consts.ArticleStatusPublished)
	w = doJSON(t, r, http.MethodDelete, "/api/articles/"+doc2.ID.Hex(), nil, adminCookie(t, admin))
	if w.Code != http.StatusOK {
		t.Fatalf("管理员删除期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/articles/"+doc2.ID.Hex(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("删除后获取期望 404，实际为 %d body=%s", w.Code, w.Body.String())
	}
}

// 测试内容：点赞开关来回切换，计数随之加减。
func TestToggleLike(t *testing.T) {
	app := setupTestApp(t)
	r := newArticleRouter(app)
	author := app.createUser(t, "alice", "alice@example.com", "Passw0rd123", true)
	reader := app.createUser(t, "bob", "bob@example.com", "Passw0rd123", true)
	doc := createArticle(t, app, author.ID, "被点赞的测试文章", consts.ArticleStatusPublished)
	cookie := loginCookie(t, reader)

	w := doJSON(t, r, http.MethodPost, "/api/articles/"+doc.ID.Hex()+"/like", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if liked, _ := body["liked"].(bool); !liked {
		t.Fatalf("首次点赞期望 liked=true，实际 body=%s", w.Body.String())
	}
	if count, _ := body["like_count"].(float64); count != 1 {
		t.Fatalf("点赞数期望 1，实际为 %v", body["like_count"])
	}

	w = doJSON(t, r, http.MethodPost, "/api/articles/"+doc.ID.Hex()+"/like", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	if liked, _ := body["liked"].(bool); liked {
		t.Fatalf("再次点击期望取消点赞，实际 body=%s", w.Body.String())
	}
	if count, _ := body["like_count"].(float64); count != 0 {
		t.Fatalf("取消后点赞数期望 0，实际为 %v", body["like_count"])
	}
}

// 测试内容：评论追加与长度上限，列表按追加顺序返回。
func TestComments(t *testing.T) {
	app := setupTestApp(t)
	r := newArticleRouter(app)
	author := app.createUser(t, "alice", "alice@example.com", "Passw0rd123", true)
	reader := app.createUser(t, "bob", "bob@example.com", "Passw0rd123", true)
	doc := createArticle(t, app, author.ID, "被评论的测试文章", consts.ArticleStatusPublished)
	cookie := loginCookie(t, reader)

	w := doJSON(t, r, http.MethodPost, "/api/articles/"+doc.ID.Hex()+"/comments", gin.H{
		"content": "写得不错",
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际为 %d body=%s", w.Code, w.Body.String())
	}

	// 超过500字符拒绝
	w = doJSON(t, r, http.MethodPost, "/api/articles/"+doc.ID.Hex()+"/comments", gin.H{
		"content": strings.Repeat("评", 501),
	}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("超长评论期望 400，实际为 %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/articles/"+doc.ID.Hex()+"/comments", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	comments, _ := body["comments"].([]interface{})
	if len(comments) != 1 {
		t.Fatalf("评论数期望 1，实际为 %d", len(comments))
	}
}

// 测试内容：列表只含已发布文章，草稿查询要求登录且只能看自己的。
func TestListArticles(t *testing.T) {
	app := setupTestApp(t)
	r := newArticleRouter(app)
	alice := app.createUser(t, "alice", "alice@example.com", "Passw0rd123", true)
	bob := app.createUser(t, "bob", "bob@example.com", "Passw0rd123", true)

	createArticle(t, app, alice.ID, "Alice 的已发布文章", consts.ArticleStatusPublished)
	createArticle(t, app, alice.ID, "Alice 的草稿文章哦", consts.ArticleStatusDraft)
	createArticle(t, app, bob.ID, "Bob 的已发布文章哦", consts.ArticleStatusPublished)

	// 匿名只能看已发布
	w := doJSON(t, r, http.MethodGet, "/api/articles", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if total, _ := body["total"].(float64); total != 2 {
		t.Fatalf("已发布文章总数期望 2，实际为 %v", body["total"])
	}

	// 匿名查草稿直接401
	w = doJSON(t, r, http.MethodGet, "/api/articles?status=draft", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("匿名查草稿期望 401，实际为 %d body=%s", w.Code, w.Body.String())
	}

	// Bob 查草稿，只能看到自己的，Alice 的草稿不可见
	w = doJSON(t, r, http.MethodGet, "/api/articles?status=draft", nil, loginCookie(t, bob))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	if total, _ := body["total"].(float64); total != 0 {
		t.Fatalf("Bob 不应看到他人草稿，实际 total=%v", body["total"])
	}

	w = doJSON(t, r, http.MethodGet, "/api/articles?status=draft", nil, loginCookie(t, alice))
	body = decodeBody(t, w)
	if total, _ := body["total"].(float64); total != 1 {
		t.Fatalf("Alice 应看到自己的草稿，实际 total=%v", body["total"])
	}
}

// 测试内容：标签过滤走文档库 ID 集合再回表。
func TestListArticles_ByTag(t *testing.T) {
	app := setupTestApp(t)
	r := newArticleRouter(app)
	alice := app.createUser(t, "alice", "alice@example.com", "Passw0rd123", true)

	status := consts.ArticleStatusPublished
	title1 := "打了标签的文章一号"
	title2 := "没有标签的文章二号"
	if _, err := app.svc.Article.Create(context.Background(), alice.ID, service.ArticleInput{
		Title:   &title1,
		Content: &testArticleContent,
		Status:  &status,
		Tags:    []string{"golang"},
	}); err != nil {
		t.Fatalf("创建文章失败: %v", err)
	}
	if _, err := app.svc.Article.Create(context.Background(), alice.ID, service.ArticleInput{
		Title:   &title2,
		Content: &testArticleContent,
		Status:  &status,
	}); err != nil {
		t.Fatalf("创建文章失败: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/articles?tag=golang", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if total, _ := body["total"].(float64); total != 1 {
		t.Fatalf("标签过滤总数期望 1，实际为 %v", body["total"])
	}
	articles, _ := body["articles"].([]interface{})
	if len(articles) != 1 {
		t.Fatalf("标签过滤结果期望 1 条，实际为 %d", len(articles))
	}
	first, _ := articles[0].(map[string]interface{})
	if _, ok := first["created_at"]; !ok {
		t.Fatalf("列表项应含 created_at 字段: %v", first)
	}
}

// 测试内容：标签过滤不绕过草稿可见性，他人经标签也查不到草稿。
func TestListArticles_TagKeepsDraftPrivate(t *testing.T) {
	app := setupTestApp(t)
	r := newArticleRouter(app)
	alice := app.createUser(t, "alice", "alice@example.com", "Passw0rd123", true)
	bob := app.createUser(t, "bob", "bob@example.com", "Passw0rd123", true)

	draft := consts.ArticleStatusDraft
	title := "藏在标签后面的草稿"
	if _, err := app.svc.Article.Create(context.Background(), alice.ID, service.ArticleInput{
		Title:   &title,
		Content: &testArticleContent,
		Status:  &draft,
		Tags:    []string{"internal"},
	}); err != nil {
		t.Fatalf("创建文章失败: %v", err)
	}

	// Bob 登录后带标签查草稿，Alice 的草稿不可见
	w := doJSON(t, r, http.MethodGet, "/api/articles?status=draft&tag=internal", nil, loginCookie(t, bob))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if total, _ := body["total"].(float64); total != 0 {
		t.Fatalf("他人草稿不应经标签查询可见，实际 total=%v body=%s", total, w.Body.String())
	}

	// 作者本人可以看到
	w = doJSON(t, r, http.MethodGet, "/api/articles?status=draft&tag=internal", nil, loginCookie(t, alice))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	if total, _ := body["total"].(float64); total != 1 {
		t.Fatalf("作者应看到自己的草稿，实际 total=%v", body["total"])
	}
}

// 测试内容：标签过滤与关键字过滤可叠加。
func TestListArticles_TagWithKeyword(t *testing.T) {
	app := setupTestApp(t)
	r := newArticleRouter(app)
	alice := app.createUser(t, "alice", "alice@example.com", "Passw0rd123", true)

	status := consts.ArticleStatusPublished
	for _, title := range []string{"Gin 路由实践笔记", "Gorm 查询实践笔记"} {
		title := title
		if _, err := app.svc.Article.Create(context.Background(), alice.ID, service.ArticleInput{
			Title:   &title,
			Content: &testArticleContent,
			Status:  &status,
			Tags:    []string{"golang"},
		}); err != nil {
			t.Fatalf("创建文章失败: %v", err)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/articles?tag=golang&q=Gin", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if total, _ := body["total"].(float64); total != 1 {
		t.Fatalf("标签加关键字期望 1，实际为 %v body=%s", body["total"], w.Body.String())
	}
}
