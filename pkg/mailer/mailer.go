package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"shoeshop/configs"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

// sendFunc delivers built messages, tests swap it to capture outgoing mail.
type sendFunc func(ctx context.Context, msg *mail.Msg) error

type SMTPMailer struct {
	from string
	send sendFunc
}

func NewSMTPMailer(cfg *configs.Config) (*SMTPMailer, error) {
	policy := mail.TLSOpportunistic
	if cfg.SMTP.RequireTLS {
		policy = mail.TLSMandatory
	}
	opts := []mail.Option{mail.WithTLSPolicy(policy)}
	if cfg.SMTP.Port > 0 {
		opts = append(opts, mail.WithPort(cfg.SMTP.Port))
	}
	if cfg.SMTP.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.SMTP.Timeout))
	}
	if cfg.SMTP.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTP.User),
			mail.WithPassword(cfg.SMTP.Password),
		)
	}

	client, err := mail.NewClient(cfg.SMTP.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &SMTPMailer{
		from: cfg.SMTP.From,
		send: func(ctx context.Context, msg *mail.Msg) error {
			return client.DialAndSendWithContext(ctx, msg)
		},
	}, nil
}

// Send dials the server under ctx, so a stalled server is abandoned at the deadline.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mail cancelled: %w", err)
	}
	if msg.To == "" {
		return fmt.Errorf("mail recipient is empty")
	}
	built, err := m.build(msg)
	if err != nil {
		return err
	}
	if err := m.send(ctx, built); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}
	return nil
}

func (m *SMTPMailer) build(msg Message) (*mail.Msg, error) {
	out := mail.NewMsg()
	if err := out.From(m.from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.from, err)
	}
	if err := out.To(singleLine(msg.To)); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	out.Subject(singleLine(msg.Subject))
	out.SetBodyString(mail.TypeTextPlain, msg.Body)
	return out, nil
}

// singleLine folds CR and LF into spaces so header values stay one header.
func singleLine(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool { return r == '\r' || r == '\n' }), " ")
}
