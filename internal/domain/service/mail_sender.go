package service

import "context"

// PasswordResetMail carries everything needed to deliver a reset email.
// Token is the plaintext reset token; only its hash is persisted.
type PasswordResetMail struct {
	To    string
	Name  string
	Token string
}

// MailSender defines the interface for outbound email delivery.
type MailSender interface {
	// SendPasswordReset delivers a password reset email.
	SendPasswordReset(ctx context.Context, mail *PasswordResetMail) error
}
