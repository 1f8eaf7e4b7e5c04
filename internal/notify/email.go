// Package notify delivers alert emails over SMTP.
package notify

import (
	"context"
	"os"

	"gopkg.in/gomail.v2"

	"github.com/Yahelsm/stz-signal-tool/internal/config"
	"github.com/Yahelsm/stz-signal-tool/internal/logger"
)

type EmailNotifier struct {
	host string
	port int
	from string
	user string
	pass string
}

// NewEmailNotifier reads credentials from SMTP_USER / SMTP_PASS so secrets
// stay out of the config file.
func NewEmailNotifier(cfg *config.Config) *EmailNotifier {
	from := cfg.SMTP.From
	user := os.Getenv("SMTP_USER")
	if from == "" {
		from = user
	}
	return &EmailNotifier{
		host: cfg.SMTP.Host,
		port: cfg.SMTP.Port,
		from: from,
		user: user,
		pass: os.Getenv("SMTP_PASS"),
	}
}

// Send delivers a multipart message: plain text always, HTML alternative
// when htmlBody is non-empty.
func (n *EmailNotifier) Send(ctx context.Context, recipients []string, subject, textBody, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	d := gomail.NewDialer(n.host, n.port, n.user, n.pass)
	if err := d.DialAndSend(m); err != nil {
		return err
	}

	logger.Notification(ctx, subject, len(recipients))
	return nil
}
