package mail

import (
	"context"

	"blogapp/internal/core/domain"
	"blogapp/internal/core/port"
	"blogapp/internal/core/telemetry"
)

type instrumentedSender struct {
	next    port.NotificationSender
	metrics *telemetry.AppMetrics
}

// WithMetrics counts sent and failed notifications per template.
func WithMetrics(next port.NotificationSender, metrics *telemetry.AppMetrics) port.NotificationSender {
	if metrics == nil {
		return next
	}
	return &instrumentedSender{next: next, metrics: metrics}
}

func (s *instrumentedSender) SendVerificationEmail(ctx context.Context, user domain.User) error {
	err := s.next.SendVerificationEmail(ctx, user)
	s.metrics.RecordEmail(ctx, TemplateVerification, outcome(err))
	return err
}

func (s *instrumentedSender) SendResetPasswordEmail(ctx context.Context, user domain.User) error {
	err := s.next.SendResetPasswordEmail(ctx, user)
	s.metrics.RecordEmail(ctx, TemplateResetPassword, outcome(err))
	return err
}

func outcome(err error) string {
	if err != nil {
		return "failed"
	}
	return "sent"
}
