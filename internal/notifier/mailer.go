package notifier

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/Pranitha-Thoutam/Event-Ease/internal/config"
)

type Mailer interface {
	SendPasswordReset(to, resetURL string) error
}

// SMTPMailer hands password-reset mail to the configured relay
// (SendGrid's SMTP endpoint by default). Delivery beyond the relay is
// the relay's problem.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		addr: cfg.SMTPHost + ":" + cfg.SMTPPort,
		auth: smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost),
		from: cfg.MailFrom,
	}
}

func (m *SMTPMailer) SendPasswordReset(to, resetURL string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Password Reset Request\r\n\r\n"+
		"You requested a password reset.\r\n"+
		"Open this link to choose a new password: %s\r\n"+
		"The link expires in 1 hour. If you didn't request this, ignore this email.\r\n",
		m.from, to, resetURL)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		log.Printf("Failed to send reset mail to %s: %v", to, err)
		return err
	}
	return nil
}
