// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

/*
Package mail delivers outbound transactional email.

The only current consumer is the password reset flow, which sends a short
numeric code. Delivery goes through plain SMTP with optional authentication;
a disabled deployment gets a sender that always refuses, so callers can
surface a clear error instead of silently dropping mail.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/inkwell-dev/inkwell/internal/platform/apperr"
	"github.com/inkwell-dev/inkwell/internal/platform/config"
)

// Sender delivers a plain-text message to a single recipient.
type Sender interface {
	SendText(ctx context.Context, to, subject, body string) error
}

// NewSender builds a [Sender] from configuration. When mail is disabled the
// returned sender rejects every send with MAIL_DISABLED.
func NewSender(cfg *config.Config, logger *slog.Logger) Sender {
	if !cfg.MailEnabled {
		return disabledSender{}
	}
	return &smtpSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		logger:   logger,
	}
}

// disabledSender is used when the deployment has no mail server configured.
type disabledSender struct{}

func (disabledSender) SendText(context.Context, string, string, string) error {
	return apperr.MailDisabled("Email delivery is not configured on this server")
}

// smtpSender delivers mail over SMTP with optional PLAIN auth.
type smtpSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *slog.Logger
}

// SendText implements [Sender].
func (s *smtpSender) SendText(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := buildMessage(s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, message); err != nil {
		s.logger.ErrorContext(ctx, "mail_send_failed",
			slog.String("to", to),
			slog.String("subject", subject),
			slog.Any("error", err),
		)
		return apperr.Internal(fmt.Errorf("mail: send failed: %w", err))
	}

	s.logger.InfoContext(ctx, "mail_sent",
		slog.String("to", to),
		slog.String("subject", subject),
	)
	return nil
}

// buildMessage assembles a minimal RFC 5322 plain-text message.
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
