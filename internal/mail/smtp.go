package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"classroom-occupancy-tracker/internal/config"
	"classroom-occupancy-tracker/internal/logger"
)

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	cfg    *config.SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	// gomail dials synchronously and has no context support; honor an
	// already-cancelled context before touching the network.
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	logger.Info("Mail dispatched",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
