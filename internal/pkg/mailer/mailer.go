package mailer

import (
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Message is one outbound e-mail with a plain-text body and an optional
// HTML alternative.
type Message struct {
	From     string
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers messages to a mail transport
type Sender interface {
	Send(msg *Message) error
}

// SMTPConfig holds configuration for the SMTP transport
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromName    string
	FromAddress string
}

// SMTPSender implements Sender over SMTP via gomail
type SMTPSender struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPSender creates a new SMTPSender
func NewSMTPSender(config SMTPConfig, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		config: config,
		logger: logger,
	}
}

// DefaultFrom returns the configured sender identity
func (s *SMTPSender) DefaultFrom() string {
	return fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress)
}

// Send delivers one message. Without SMTP credentials the message is
// logged instead of sent, so local development works without a mail
// account.
func (s *SMTPSender) Send(msg *Message) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Strs("to", msg.To).
			Str("subject", msg.Subject).
			Str("body", msg.TextBody).
			Msg("SMTP credentials not configured - mail not sent")
		return nil
	}

	m := gomail.NewMessage()
	from := msg.From
	if from == "" {
		from = s.DefaultFrom()
	}
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}

	dialer := gomail.NewDialer(s.config.Host, s.config.Port, s.config.Username, s.config.Password)
	if err := dialer.DialAndSend(m); err != nil {
		s.logger.Error().Err(err).Strs("to", msg.To).Str("subject", msg.Subject).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("Email sent")
	return nil
}
