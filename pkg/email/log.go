package email

import (
	"github.com/aetherdigital/backend/pkg/logger"

	"go.uber.org/zap"
)

// LogSender writes messages to the log instead of a mail server. It backs
// EMAIL_ENABLED=false and dry runs.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(input SendEmailInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	logger.Info("email not sent, logging only",
		zap.String("to", input.To),
		zap.String("subject", input.Subject),
		zap.Int("body_bytes", len(input.Body)))

	return nil
}
