package service

import (
	"context"

	"github.com/aetherdigital/backend/internal/config"
	"github.com/aetherdigital/backend/internal/domain"
	"github.com/aetherdigital/backend/internal/repository"
	"github.com/aetherdigital/backend/pkg/auth"
	emailProvider "github.com/aetherdigital/backend/pkg/email"
	"github.com/aetherdigital/backend/pkg/hash"
)

type Services struct {
	Users         Users
	Verifications Verifications
	Notifications Notifications
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.PasswordHasher
	TokenManager auth.TokenManager
	EmailSender  emailProvider.Sender
	Repos        *repository.Repositories
	// Queue is optional, without it signup dispatches the confirmation inline.
	Queue VerificationQueue
}

func NewServices(deps Deps) (*Services, error) {
	notifications, err := newNotificationService(
		deps.Repos.Verifications,
		deps.TokenManager,
		deps.EmailSender,
		deps.Config.Verification,
		deps.Config.Email,
	)
	if err != nil {
		return nil, err
	}

	verifications := newVerificationService(
		deps.Repos.Users,
		deps.Repos.Verifications,
		deps.Repos.UsedTokens,
		deps.TokenManager,
	)

	return &Services{
		Users: newUserService(
			deps.Repos.Users,
			deps.Repos.Verifications,
			deps.Hasher,
			verifications,
			notifications,
			deps.Queue,
		),
		Verifications: verifications,
		Notifications: notifications,
	}, nil
}

// VerificationQueue hands a confirmation email for username to a background worker.
type VerificationQueue interface {
	EnqueueVerification(ctx context.Context, username string) error
}

type Users interface {
	SignUp(ctx context.Context, input SignUpInput) (*SignUpResult, error)
	Login(ctx context.Context, username string, password string) error
}

type Verifications interface {
	Confirm(ctx context.Context, token string) (string, error)
	ConfirmByUsername(ctx context.Context, username string) (*domain.VerificationEntry, error)
	Resync(ctx context.Context) ([]domain.VerificationEntry, error)
	List(ctx context.Context) ([]domain.VerificationEntry, error)
	UsedCount(ctx context.Context) (int, error)
}

type Notifications interface {
	DispatchTo(ctx context.Context, entries []domain.VerificationEntry) *DispatchReport
	SendAll(ctx context.Context) (*DispatchReport, error)
	SendOne(ctx context.Context, username string, email string) (*DispatchReport, error)
	SendNewest(ctx context.Context) (*DispatchReport, error)
}
