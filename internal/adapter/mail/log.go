package mail

import (
	"context"
	"time"

	"go.uber.org/zap"

	"blogapp/internal/core/domain"
	"blogapp/internal/core/port"
	"blogapp/pkg/config"
)

// LogSender writes notifications to the application log instead of
// delivering them. Meant for local development only.
type LogSender struct {
	logger  *config.LokiLogger
	codeTTL time.Duration
}

func NewLogSender(logger *config.LokiLogger, codeTTL time.Duration) port.NotificationSender {
	return &LogSender{logger: logger, codeTTL: codeTTL}
}

func (s *LogSender) SendVerificationEmail(ctx context.Context, user domain.User) error {
	msg, err := verificationMessage(user, s.codeTTL)
	if err != nil {
		return err
	}
	s.write(ctx, msg)
	return nil
}

func (s *LogSender) SendResetPasswordEmail(ctx context.Context, user domain.User) error {
	msg, err := resetPasswordMessage(user, s.codeTTL)
	if err != nil {
		return err
	}
	s.write(ctx, msg)
	return nil
}

func (s *LogSender) write(ctx context.Context, msg Message) {
	s.logger.Info(ctx, "Email not delivered, mail driver is log",
		zap.String("template", msg.Template),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
}
