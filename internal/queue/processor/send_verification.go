package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aetherdigital/backend/internal/queue/task"
	"github.com/aetherdigital/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type sendVerificationProcessor struct {
	workers *worker.Workers
}

func NewSendVerificationProcessor(workers *worker.Workers) *sendVerificationProcessor {
	return &sendVerificationProcessor{
		workers: workers,
	}
}

func (p *sendVerificationProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendVerification
	if err := json.Unmarshal(t.Payload(), &data); err != nil {
		return fmt.Errorf("process send verification task json unmarshal failed: %w: %w", err, asynq.SkipRetry)
	}

	err := p.workers.VerificationSender.SendVerification(ctx, data.Username)
	if errors.Is(err, worker.ErrPermanent) {
		return fmt.Errorf("send verification to %s failed: %w: %w", data.Username, err, asynq.SkipRetry)
	}
	if err != nil {
		return fmt.Errorf("send verification to %s failed: %w", data.Username, err)
	}

	return nil
}
