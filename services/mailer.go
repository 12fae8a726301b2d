package services

import (
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"

	"workmesh-backend/models"
	"workmesh-backend/utils/logger"
)

// Mailer sends the client invite mail. Kept as an interface so tests
// and local runs can swap in a no-op.
type Mailer interface {
	SendProjectRequestInvite(toEmail, clientName, formURL, companyName string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	config *models.Config
	logger logger.Logger
}

func NewSMTPMailer(cfg *models.Config, log logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		config: cfg,
		logger: log,
	}
}

func (m *SMTPMailer) SendProjectRequestInvite(toEmail, clientName, formURL, companyName string) error {
	greeting := "Hello"
	if clientName != "" {
		greeting = "Hello " + clientName
	}

	subject := fmt.Sprintf("%s invites you to describe your project", companyName)
	body := strings.Join([]string{
		greeting + ",",
		"",
		fmt.Sprintf("%s would like you to share your project requirements.", companyName),
		"Please fill in the form at the link below. The link is single-use.",
		"",
		formURL,
		"",
		"Thank you.",
	}, "\r\n")

	msg := strings.Join([]string{
		"From: " + m.config.SMTPFrom,
		"To: " + toEmail,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := m.config.SMTPHost + ":" + m.config.SMTPPort

	var auth smtp.Auth
	if m.config.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.config.SMTPUser, m.config.SMTPPass, m.config.SMTPHost)
	}

	// The envelope sender must be a bare address even when the From
	// header carries a display name.
	envelopeFrom := m.config.SMTPFrom
	if parsed, err := mail.ParseAddress(m.config.SMTPFrom); err == nil {
		envelopeFrom = parsed.Address
	}

	if err := smtp.SendMail(addr, auth, envelopeFrom, []string{toEmail}, []byte(msg)); err != nil {
		m.logger.Errorf("Failed to send invite mail to %s: %v", toEmail, err)
		return err
	}

	m.logger.Infof("Invite mail sent to %s", toEmail)
	return nil
}
