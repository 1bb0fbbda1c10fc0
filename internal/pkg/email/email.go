package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/kin-platform/kin-backend/internal/pkg/logger"
)

// Mailer delivers one-time codes to users. Delivery is awaited: callers
// must not report success before the mail has been handed to the relay.
type Mailer interface {
	SendActivationCode(to, name, code string) error
	SendPasswordResetCode(to, name, code string) error
}

// Config holds SMTP relay settings
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// Enabled disables real delivery when false; codes are logged instead.
	// Meant for local development only.
	Enabled bool
}

// SMTPMailer sends mail through a plain SMTP relay
type SMTPMailer struct {
	config Config
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(config Config) *SMTPMailer {
	return &SMTPMailer{config: config}
}

// SendActivationCode mails an account activation code
func (m *SMTPMailer) SendActivationCode(to, name, code string) error {
	subject := "Activate your KIN account"
	body := activationBody(name, code)
	return m.send(to, subject, body)
}

// SendPasswordResetCode mails a password reset code
func (m *SMTPMailer) SendPasswordResetCode(to, name, code string) error {
	subject := "Reset your KIN password"
	body := resetBody(name, code)
	return m.send(to, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if !m.config.Enabled {
		logger.Warn().
			Str("to", to).
			Str("subject", subject).
			Msg("Email delivery disabled, logging message instead")
		logger.Info().Str("body", body).Msg("Email body")
		return nil
	}

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.config.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg.String())); err != nil {
		logger.Error().Err(err).Str("to", to).Msg("Failed to send email")
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	logger.Debug().Str("to", to).Str("subject", subject).Msg("Email sent")
	return nil
}

func activationBody(name, code string) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Welcome to KIN, %s!</h2>
  <p>Use the code below to activate your account. It expires in a few minutes.</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">%s</p>
  <p>If you did not create this account, you can ignore this email.</p>
</body>
</html>`, name, code)
}

func resetBody(name, code string) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Hello %s,</h2>
  <p>We received a request to reset your password. Use the code below to continue. It expires in a few minutes.</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">%s</p>
  <p>If you did not request a password reset, you can ignore this email.</p>
</body>
</html>`, name, code)
}
