package service

import (
	"crypto/tls"
	"fmt"
	"log"
	"mime"
	"net/mail"
	"net/smtp"
	"os"
	"strings"
	"time"

	"github.com/jerrry-dev/ailuminate-v2/internal/config"
	"github.com/jerrry-dev/ailuminate-v2/internal/consts"
	"github.com/jerrry-dev/ailuminate-v2/internal/utils"
)

type EmailService struct {
	settings *SettingsService
}

func NewEmailService(settings *SettingsService) *EmailService {
	return &EmailService{settings: settings}
}

// ShouldSendEmail 判断当前配置下是否可以发送邮件
func (s *EmailService) ShouldSendEmail() bool {
	if !s.settings.GetBool(consts.ConfigEnableSMTP) {
		return false
	}
	return config.Get().SMTP.Host != ""
}

func (s *EmailService) siteName() string {
	name := s.settings.GetString(consts.ConfigSiteName)
	if name == "" {
		name = "Ailuminate"
	}
	return name
}

// SendVerificationEmail 发送验证邮件
func (s *EmailService) SendVerificationEmail(toEmail, username, verifyUrl string) error {
	if !s.ShouldSendEmail() {
		return nil
	}

	siteName := s.siteName()
	subject := fmt.Sprintf("欢迎注册 %s - 请验证您的邮箱", siteName)

	// 读取模板文件
	templatePath := config.GetConfigDir() + "/verification-mail.html"
	contentBytes, err := os.ReadFile(templatePath)
	var body string
	if err != nil {
		// 如果模板读取失败，使用默认简单模板
		body = fmt.Sprintf(`
			<h1>欢迎加入 %s</h1>
			<p>请点击链接验证邮箱: <a href="%s">%s</a></p>
		`, siteName, verifyUrl, verifyUrl)
	} else {
		body = string(contentBytes)
		body = strings.ReplaceAll(body, "{{site_name}}", siteName)
		body = strings.ReplaceAll(body, "{{username}}", username)
		body = strings.ReplaceAll(body, "{{verify_url}}", verifyUrl)
	}

	return s.deliver(toEmail, subject, body)
}

// SendWelcomeEmail 邮箱验证完成后发送欢迎邮件
func (s *EmailService) SendWelcomeEmail(toEmail, username string) error {
	if !s.ShouldSendEmail() {
		return nil
	}

	siteName := s.siteName()
	subject := fmt.Sprintf("欢迎来到 %s", siteName)

	templatePath := config.GetConfigDir() + "/welcome-mail.html"
	contentBytes, err := os.ReadFile(templatePath)
	var body string
	if err != nil {
		body = fmt.Sprintf(`
			<h1>%s，你好！</h1>
			<p>你的邮箱已验证完成，现在可以登录 %s 开始写作了。</p>
		`, username, siteName)
	} else {
		body = string(contentBytes)
		body = strings.ReplaceAll(body, "{{site_name}}", siteName)
		body = strings.ReplaceAll(body, "{{username}}", username)
	}

	return s.deliver(toEmail, subject, body)
}

// SendTestEmail 发送测试邮件
func (s *EmailService) SendTestEmail(toEmail string) error {
	cfg := config.Get()
	if cfg.SMTP.Host == "" {
		return fmt.Errorf("SMTP Host 未配置")
	}

	siteName := s.siteName()
	subject := fmt.Sprintf("%s SMTP 测试邮件", siteName)
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body>
    <h3>SMTP 配置测试成功</h3>
    <p>这是一封来自 <strong>%s</strong> 的测试邮件。</p>
    <p>如果您收到此邮件，说明您的 SMTP 服务配置正确。</p>
    <p>时间: %s</p>
</body>
</html>
`, siteName, time.Now().Format("2006-01-02 15:04:05"))

	return s.deliver(toEmail, subject, body)
}

func (s *EmailService) deliver(toEmail, subject, body string) error {
	cfg := config.Get()
	if cfg.SMTP.Host == "" {
		return nil
	}

	auth := smtp.PlainAuth("", cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Host)

	fromHeader, fromAddr, err := parseAddressForHeader(cfg.SMTP.From)
	if err != nil {
		return err
	}
	toHeader, toAddr, err := parseAddressForHeader(toEmail)
	if err != nil {
		return err
	}

	msg, err := buildEmailMessage(fromHeader, toHeader, subject, body)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.SMTP.Host, cfg.SMTP.Port)

	// 如果配置了 SSL (通常是端口 465)，需要使用 tls 连接
	if cfg.SMTP.SSL {
		return sendMailWithSSL(addr, auth, fromAddr, []string{toAddr}, msg)
	}

	// 默认使用 STARTTLS (通常是端口 587 或 25)
	return smtp.SendMail(addr, auth, fromAddr, []string{toAddr}, msg)
}

func sendMailWithSSL(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	cfg := config.Get()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         cfg.SMTP.Host,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		log.Printf("[Email] TLS 连接失败: %v", err)
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, cfg.SMTP.Host)
	if err != nil {
		log.Printf("[Email] 创建 SMTP 客户端失败: %v", err)
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err = client.Auth(auth); err != nil {
				log.Printf("[Email] SMTP认证失败: %v", err)
				return err
			}
		}
	}

	if err = client.Mail(from); err != nil {
		log.Printf("[Email] MAIL FROM 命令失败: %v", err)
		return err
	}
	for _, addr := range to {
		if err = client.Rcpt(addr); err != nil {
			// 不记录具体邮箱地址，防止日志泄露敏感信息
			log.Printf("[Email] RCPT TO 命令失败: %v", err)
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		log.Printf("[Email] DATA 命令失败: %v", err)
		return err
	}
	_, err = w.Write(msg)
	if err != nil {
		log.Printf("[Email] 写入邮件内容失败: %v", err)
		return err
	}
	err = w.Close()
	if err != nil {
		log.Printf("[Email] 关闭 DATA 失败: %v", err)
		return err
	}

	return client.Quit()
}

func parseAddressForHeader(input string) (string, string, error) {
	if utils.ContainsCRLF(input) {
		return "", "", fmt.Errorf("invalid address header: CRLF not allowed")
	}

	addr, err := mail.ParseAddress(input)
	if err != nil {
		return "", "", err
	}

	headerValue := addr.String()
	if utils.ContainsCRLF(headerValue) {
		return "", "", fmt.Errorf("invalid address header: CRLF not allowed")
	}

	return headerValue, addr.Address, nil
}

func buildEmailMessage(fromHeader, toHeader, subject, body string) ([]byte, error) {
	if utils.ContainsCRLF(subject) {
		return nil, fmt.Errorf("invalid subject header: CRLF not allowed")
	}
	// 对 Subject 进行 MIME 编码，防止中文乱码或被拒收
	encodedSubject := mime.BEncoding.Encode("UTF-8", subject)
	dateStr := time.Now().Format(time.RFC1123Z)

	header := fmt.Sprintf("Date: %s\r\nFrom: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		dateStr, fromHeader, toHeader, encodedSubject)
	return []byte(header + body), nil
}
