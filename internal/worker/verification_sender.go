package worker

import (
	"context"
	"fmt"

	"github.com/aetherdigital/backend/internal/service"
	"github.com/aetherdigital/backend/pkg/logger"

	"go.uber.org/zap"
)

type verificationSender struct {
	notifications service.Notifications
}

func newVerificationSender(notifications service.Notifications) *verificationSender {
	return &verificationSender{notifications: notifications}
}

// SendVerification dispatches a confirmation email to username. A user that is already
// verified, or gone, is not an error. Transport failures are returned so the task is retried.
func (s *verificationSender) SendVerification(ctx context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("%w: empty username", ErrPermanent)
	}

	report, err := s.notifications.SendOne(ctx, username, "")
	if err != nil {
		return err
	}

	if report.Sent > 0 {
		return nil
	}

	if len(report.Errors) == 0 {
		logger.Info("no pending verification for queued user", zap.String("username", username), zap.String("message", report.Message))
		return nil
	}

	failure := report.Errors[0]
	if failure.Reason == service.DispatchTransportFailure {
		return fmt.Errorf("%w: %s", service.ErrTransportFailure, failure.Error)
	}

	return fmt.Errorf("%w: %s: %s", ErrPermanent, failure.Reason, failure.Error)
}
