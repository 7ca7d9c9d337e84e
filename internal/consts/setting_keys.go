package consts

const (

	// ConfigSiteName 网站名称
	ConfigSiteName = "site_name"

	// ConfigSiteDescription 网站描述
	ConfigSiteDescription = "site_description"

	// ConfigBaseURL 站点外部访问地址（用于拼接邮件中的验证链接）
	ConfigBaseURL = "base_url"

	// ConfigAllowSignup 是否开放注册 (true/false)
	ConfigAllowSignup = "allow_signup"

	// ConfigEnableSMTP 是否启用邮件发送
	ConfigEnableSMTP = "enable_smtp"

	// ConfigRateLimitEnabled 是否开启接口限流
	ConfigRateLimitEnabled = "rate_limit_enabled"

	// ConfigRateLimitAuthRPS 认证接口限流 RPS
	ConfigRateLimitAuthRPS = "rate_limit_auth_rps"

	// ConfigRateLimitAuthBurst 认证接口限流 Burst
	ConfigRateLimitAuthBurst = "rate_limit_auth_burst"

	// ConfigMaxRequestBodySize 最大请求体限制 (MB)
	ConfigMaxRequestBodySize = "max_request_body_size"

	// ConfigUserSearchLimit 用户搜索默认返回数量上限
	ConfigUserSearchLimit = "user_search_limit"
)
