package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/LordKisik/yamdb-final/pkg/utils"

	"go.uber.org/zap"
)

// Mailer delivers confirmation codes over SMTP. When SMTP is not
// configured the code is written to the log instead, which is enough
// for local development.
type Mailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func New(config utils.EmailConfig, log *zap.Logger) *Mailer {
	return &Mailer{
		config: config,
		log:    log.With(zap.String("component", "mailer")),
	}
}

func (m *Mailer) SendConfirmationCode(email, username, code string) error {
	if m.config.Host == "" {
		m.log.Info("SMTP not configured, logging confirmation code",
			zap.String("email", email),
			zap.String("code", code),
		)
		return nil
	}

	subject := "Confirmation code for YaMDb"
	body := fmt.Sprintf("Hi, %s! Your confirmation code: %s", username, code)
	message := m.buildMessage(email, subject, body)

	var auth smtp.Auth
	if m.config.User != "" && m.config.Password != "" {
		auth = smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)
	}

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	if err := smtp.SendMail(addr, auth, m.config.From, []string{email}, message); err != nil {
		m.log.Error("Failed to send confirmation email",
			zap.Error(err),
			zap.String("email", email),
		)
		return fmt.Errorf("send confirmation email to %s: %w", email, err)
	}

	m.log.Info("Confirmation email sent", zap.String("email", email))
	return nil
}

func (m *Mailer) buildMessage(to, subject, body string) []byte {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("From: %s\r\n", m.config.From))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)

	return []byte(sb.String())
}
