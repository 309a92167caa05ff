// Package mail delivers outbound email. Only the password reset flow sends
// mail today.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"souq/config"
	"souq/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SenderParams holds dependencies for MailSender, injected by Fx.
type SenderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewMailSender creates a MailSender based on configuration. Without SMTP
// settings it returns a logging sender, so development environments work
// without a mail server.
func NewMailSender(params SenderParams) service.MailSender {
	if params.Config.SMTP == nil {
		params.Logger.Info("SMTP not configured, using logging mail sender")

		return &logSender{logger: params.Logger}
	}

	return &smtpSender{cfg: params.Config.SMTP, logger: params.Logger}
}

// smtpSender delivers mail through a configured SMTP relay.
type smtpSender struct {
	cfg    *config.SMTPConfig
	logger *slog.Logger
}

func (s *smtpSender) SendPasswordReset(_ context.Context, mail *service.PasswordResetMail) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	msg := buildResetMessage(s.cfg.From, mail)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{mail.To}, msg); err != nil {
		return errors.Wrap(err, "send reset mail")
	}

	s.logger.Info("password reset mail sent", slog.String("to", mail.To))

	return nil
}

func buildResetMessage(from string, mail *service.PasswordResetMail) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", mail.To)
	b.WriteString("Subject: Your password reset token (valid for 15 minutes)\r\n")
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", mail.Name)
	b.WriteString("Use the token below to reset your password. If you did not request a reset, ignore this mail.\r\n\r\n")
	fmt.Fprintf(&b, "%s\r\n", mail.Token)

	return []byte(b.String())
}

// logSender writes reset tokens to the log instead of sending mail.
// Development only: the plaintext token ends up in the log stream.
type logSender struct {
	logger *slog.Logger
}

func (s *logSender) SendPasswordReset(_ context.Context, mail *service.PasswordResetMail) error {
	s.logger.Info("[LogMail] password reset requested",
		slog.String("to", mail.To),
		slog.String("token", mail.Token),
	)

	return nil
}
