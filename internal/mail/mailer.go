// Package mail sends transactional email over SMTP: password-reset
// links and contact-form relays.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "gopkg.in/gomail.v2"

	"github.com/homegame/api/internal/config"
)

// SMTPMailer sends mail through a single SMTP account.
type SMTPMailer struct {
	dialer *gomail.Dialer
	sender string
	// contact-form submissions are relayed here
	contactRecipient string
}

// NewSMTPMailer creates a mailer from the mail configuration.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer:           gomail.NewDialer(cfg.Host, cfg.Port, cfg.Sender, cfg.Password),
		sender:           cfg.Sender,
		contactRecipient: cfg.ContactRecipient,
	}
}

// SendPasswordReset emails a one-hour reset link to the account holder.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, recipient, username, link string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", "HomeGame: Password Reset")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Someone requested a password reset for your HomeGame account. If this
was you, follow the link below within the next hour. Otherwise you can
ignore this email.</p>
<p><a href="%s">Reset your password</a></p>`,
		username, link))

	return m.send(ctx, msg)
}

// SendContactForm relays a contact-form submission to the site inbox.
func (m *SMTPMailer) SendContactForm(ctx context.Context, name, email, message string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", m.contactRecipient)
	msg.SetHeader("Reply-To", email)
	msg.SetHeader("Subject", fmt.Sprintf("HomeGame contact form: %s", name))
	msg.SetBody("text/plain", fmt.Sprintf("From: %s <%s>\n\n%s", name, email, message))

	return m.send(ctx, msg)
}

// send honors context cancellation around the blocking SMTP dial.
func (m *SMTPMailer) send(ctx context.Context, msg *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			slog.Error("smtp send failed", slog.Any("error", err))
		}
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
