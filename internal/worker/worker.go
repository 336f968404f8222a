package worker

import (
	"context"
	"errors"

	"github.com/aetherdigital/backend/internal/service"
)

// ErrPermanent marks a failure that retrying cannot fix.
var ErrPermanent = errors.New("permanent failure")

type Workers struct {
	VerificationSender VerificationSender
}

type Deps struct {
	Services *service.Services
}

type VerificationSender interface {
	SendVerification(ctx context.Context, username string) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		VerificationSender: newVerificationSender(deps.Services.Notifications),
	}
}
