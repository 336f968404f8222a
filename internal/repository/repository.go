package repository

import (
	"context"

	"github.com/aetherdigital/backend/internal/config"
	"github.com/aetherdigital/backend/internal/domain"
	"github.com/aetherdigital/backend/internal/storage"
)

type Repositories struct {
	Users         Users
	Verifications Verifications
	UsedTokens    UsedTokens
}

// NewRepositories gives every store its own document. Writers are serialized per
// document by the backend, across every Repositories sharing it.
func NewRepositories(backend storage.Backend, cfg config.Storage) *Repositories {
	return &Repositories{
		Users:         newUserRepository(backend, cfg.Users),
		Verifications: newVerificationRepository(backend, cfg.Verifications),
		UsedTokens:    newUsedTokenRepository(backend, cfg.UsedTokens),
	}
}

// Users is the record store.
type Users interface {
	Append(ctx context.Context, user *domain.UserRecord) error
	LoadAll(ctx context.Context) ([]domain.UserRecord, error)
	GetByUsername(ctx context.Context, username string) (*domain.UserRecord, error)
}

// Verifications is the projection of verification state derived from Users.
type Verifications interface {
	Resync(ctx context.Context, users []domain.UserRecord) ([]domain.VerificationEntry, error)
	List(ctx context.Context) ([]domain.VerificationEntry, error)
	SetVerified(ctx context.Context, username string) (*domain.VerificationEntry, error)
	IsVerified(ctx context.Context, username string, email string) (bool, error)
}

// UsedTokens is the registry of consumed token nonces.
type UsedTokens interface {
	IsUsed(ctx context.Context, nonce string) (bool, error)
	MarkUsed(ctx context.Context, nonce string) error
	Count(ctx context.Context) (int, error)
}
