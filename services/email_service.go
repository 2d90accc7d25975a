package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"glimpse-api/config"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	var dialer *gomail.Dialer
	if cfg.SMTPHost != "" {
		dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

// SendWelcomeEmail greets a freshly registered account. A nil dialer
// (no SMTP configured) makes this a no-op.
func (es *EmailService) SendWelcomeEmail(email, username string) error {
	if es.dialer == nil {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Welcome to %s", es.config.FromName))

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Hello %s!</h2>
    <p>Your account is ready. Share your first post and find people to follow.</p>
    <p>— The %s team</p>
</body>
</html>`, username, es.config.FromName)

	m.SetBody("text/html", htmlBody)

	return es.dialer.DialAndSend(m)
}
