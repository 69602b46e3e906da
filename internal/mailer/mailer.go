package mailer

import (
	"github.com/jobdeck-dev/jobdeck/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends outbound mail over SMTP. It confirms acceptance by the relay
// or returns the transport error; retrying is the caller's concern.
type Mailer struct {
	cfg    *config.Smtp
	dialer *gomail.Dialer
}

func New(cfg *config.Smtp) *Mailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Mailer{cfg: cfg, dialer: dialer}
}

// Send delivers a message with an html body and a plain-text fallback.
func (m *Mailer) Send(to, subject, htmlBody, textBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.SenderName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}

	return m.dialer.DialAndSend(msg)
}
