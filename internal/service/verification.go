package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aetherdigital/backend/internal/domain"
	"github.com/aetherdigital/backend/internal/metrics"
	"github.com/aetherdigital/backend/internal/repository"
	"github.com/aetherdigital/backend/pkg/auth"
	"github.com/aetherdigital/backend/pkg/logger"

	"go.uber.org/zap"
)

type verificationService struct {
	userRepository         repository.Users
	verificationRepository repository.Verifications
	usedTokenRepository    repository.UsedTokens
	tokenManager           auth.TokenManager
	nonceLocks             *keyLock
}

func newVerificationService(
	userRepository repository.Users,
	verificationRepository repository.Verifications,
	usedTokenRepository repository.UsedTokens,
	tokenManager auth.TokenManager,
) *verificationService {
	return &verificationService{
		userRepository:         userRepository,
		verificationRepository: verificationRepository,
		usedTokenRepository:    usedTokenRepository,
		tokenManager:           tokenManager,
		nonceLocks:             newKeyLock(),
	}
}

// Confirm consumes token and marks its user verified. Rejections are *ConfirmError;
// any other error is a store failure.
//
// The projection is updated before the nonce is recorded. If the process dies between
// the two, replaying the token only re-confirms an already verified user. The nonce is
// claimed inside the store's exclusive update, so when several processes race on one
// token only the one that records the nonce reports success.
func (s *verificationService) Confirm(ctx context.Context, token string) (string, error) {
	username, err := s.confirm(ctx, token)

	outcome := string(ReasonConfirmed)
	var cerr *ConfirmError
	switch {
	case errors.As(err, &cerr):
		outcome = string(cerr.Reason)
		logger.Info("confirmation rejected", zap.String("reason", outcome), zap.String("username", username))
	case err != nil:
		outcome = "error"
		logger.Error("confirmation failed", zap.Error(err), zap.String("username", username))
	default:
		logger.Info("email confirmed", zap.String("username", username))
	}
	metrics.Confirmations.WithLabelValues(outcome).Inc()

	return username, err
}

func (s *verificationService) confirm(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", rejected(ReasonTokenAbsent, nil)
	}

	claims, err := s.tokenManager.Validate(token, s.tokenManager.TTL())
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			return "", rejected(ReasonTokenExpired, err)
		case errors.Is(err, auth.ErrTokenBadSignature):
			return "", rejected(ReasonTokenInvalid, err)
		default:
			return "", rejected(ReasonTokenMalformed, err)
		}
	}

	username, nonce := claims.Username, claims.Nonce()
	if username == "" || nonce == "" {
		return username, rejected(ReasonTokenMalformed, auth.ErrTokenMissingFields)
	}

	// requests in this process carrying the same token queue here
	unlock := s.nonceLocks.Lock(nonce)
	defer unlock()

	used, err := s.usedTokenRepository.IsUsed(ctx, nonce)
	if err != nil {
		return username, fmt.Errorf("check nonce failed: %w", err)
	}
	if used {
		return username, rejected(ReasonTokenAlreadyUsed, nil)
	}

	if _, err := s.verificationRepository.SetVerified(ctx, username); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return username, rejected(ReasonUserNotFound, err)
		}
		return username, fmt.Errorf("set verified failed: %w", err)
	}

	if err := s.usedTokenRepository.MarkUsed(ctx, nonce); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return username, rejected(ReasonTokenAlreadyUsed, err)
		}
		return username, fmt.Errorf("mark nonce used failed: %w", err)
	}

	return username, nil
}

// ConfirmByUsername verifies username without a token. No nonce is consumed.
func (s *verificationService) ConfirmByUsername(ctx context.Context, username string) (*domain.VerificationEntry, error) {
	entry, err := s.verificationRepository.SetVerified(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("set verified failed: %w", err)
	}

	logger.Info("email confirmed without token", zap.String("username", username))
	metrics.Confirmations.WithLabelValues("manual").Inc()

	return entry, nil
}

// Resync rebuilds the projection from the record store, keeping confirmations.
func (s *verificationService) Resync(ctx context.Context) ([]domain.VerificationEntry, error) {
	users, err := s.userRepository.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users failed: %w", err)
	}

	return s.verificationRepository.Resync(ctx, users)
}

func (s *verificationService) List(ctx context.Context) ([]domain.VerificationEntry, error) {
	return s.verificationRepository.List(ctx)
}

func (s *verificationService) UsedCount(ctx context.Context) (int, error) {
	return s.usedTokenRepository.Count(ctx)
}
