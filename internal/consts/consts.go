package consts

const (
	ApplicationName    = "Ailuminate Server"
	ApplicationVersion = "v2.1.0"

	// AuthCookieName 普通用户登录态 Cookie 名称
	AuthCookieName = "auth_token"

	// AdminCookieName 管理员登录态 Cookie 名称
	// 与用户 Cookie 完全隔离：管理员令牌无法访问用户路由，反之亦然
	AdminCookieName = "admin_token"

	// TokenTypeLogin 用户登录令牌类型标识
	TokenTypeLogin = "login"

	// TokenTypeAdminLogin 管理员登录令牌类型标识
	TokenTypeAdminLogin = "admin_login"
)

const (
	// ArticleStatusDraft 草稿状态
	ArticleStatusDraft = "draft"

	// ArticleStatusPublished 已发布状态
	ArticleStatusPublished = "published"
)
