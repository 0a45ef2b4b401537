package mail

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"blogapp/internal/core/domain"
	"blogapp/internal/core/port"
	"blogapp/pkg/config"
)

type SMTPSender struct {
	client  *gomail.Client
	from    string
	codeTTL time.Duration
}

func NewSMTPSender(cfg config.MailConfig, codeTTL time.Duration) (port.NotificationSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(10 * time.Second),
	}

	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &SMTPSender{
		client:  client,
		from:    cfg.From,
		codeTTL: codeTTL,
	}, nil
}

func (s *SMTPSender) SendVerificationEmail(ctx context.Context, user domain.User) error {
	msg, err := verificationMessage(user, s.codeTTL)
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}

func (s *SMTPSender) SendResetPasswordEmail(ctx context.Context, user domain.User) error {
	msg, err := resetPasswordMessage(user, s.codeTTL)
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}

func (s *SMTPSender) send(ctx context.Context, message Message) error {
	msg := gomail.NewMsg()

	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(message.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(message.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, message.Body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
