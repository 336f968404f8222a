package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aetherdigital/backend/internal/domain"
	"github.com/aetherdigital/backend/internal/metrics"
	"github.com/aetherdigital/backend/internal/repository"
	"github.com/aetherdigital/backend/pkg/hash"
	"github.com/aetherdigital/backend/pkg/logger"

	"go.uber.org/zap"
)

type userService struct {
	userRepository         repository.Users
	verificationRepository repository.Verifications
	hasher                 hash.PasswordHasher
	verifications          Verifications
	notifications          Notifications
	queue                  VerificationQueue
	now                    func() time.Time
}

func newUserService(
	userRepository repository.Users,
	verificationRepository repository.Verifications,
	hasher hash.PasswordHasher,
	verifications Verifications,
	notifications Notifications,
	queue VerificationQueue,
) *userService {
	return &userService{
		userRepository:         userRepository,
		verificationRepository: verificationRepository,
		hasher:                 hasher,
		verifications:          verifications,
		notifications:          notifications,
		queue:                  queue,
		now:                    time.Now,
	}
}

type SignUpInput struct {
	Username  string
	Password  string
	Email1    string
	Email2    string
	Birthdate string
	TaxID     string
}

type SignUpResult struct {
	Username string
	Email    string
	// Queued is set when the confirmation email was handed to the queue.
	Queued bool
	// Dispatch is the inline dispatch report, nil when queued or when dispatch failed.
	Dispatch *DispatchReport
}

func (s *userService) SignUp(ctx context.Context, input SignUpInput) (*SignUpResult, error) {
	const op = "service.userService.SignUp"

	user := domain.UserRecord{
		Username:  input.Username,
		Email1:    input.Email1,
		Email2:    input.Email2,
		Birthdate: input.Birthdate,
		TaxID:     input.TaxID,
	}
	user.Normalize()
	user.TaxID = domain.NormalizeTaxID(user.TaxID)

	if user.Email1 != user.Email2 {
		return nil, ErrEmailMismatch
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		metrics.Signups.WithLabelValues(metrics.SignupError).Inc()
		return nil, fmt.Errorf("%s: hash password failed: %w", op, err)
	}
	user.PasswordHash = passwordHash
	user.CreatedAt = s.now().UTC()

	if err := s.userRepository.Append(ctx, &user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			metrics.Signups.WithLabelValues(metrics.SignupDuplicate).Inc()
		} else {
			metrics.Signups.WithLabelValues(metrics.SignupError).Inc()
		}
		return nil, err
	}
	metrics.Signups.WithLabelValues(metrics.SignupCreated).Inc()
	logger.Info("user signed up", zap.String("username", user.Username), zap.String("email", user.Email1))

	// the record is durable at this point, a stale projection is fixed by the next resync
	if _, err := s.verifications.Resync(ctx); err != nil {
		logger.Error("projection resync after signup failed", zap.Error(err), zap.String("username", user.Username))
	}

	result := &SignUpResult{Username: user.Username, Email: user.Email1}

	if s.queue != nil {
		err := s.queue.EnqueueVerification(ctx, user.Username)
		if err == nil {
			result.Queued = true
			return result, nil
		}
		logger.Warn("enqueue confirmation failed, sending inline", zap.Error(err), zap.String("username", user.Username))
	}

	report, err := s.notifications.SendOne(ctx, user.Username, "")
	if err != nil {
		logger.Error("confirmation dispatch after signup failed", zap.Error(err), zap.String("username", user.Username))
		return result, nil
	}
	result.Dispatch = report

	return result, nil
}

// Login checks the password first, so an unverified account is only revealed to its owner.
func (s *userService) Login(ctx context.Context, username string, password string) error {
	const op = "service.userService.Login"

	user, err := s.userRepository.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("%s: get user failed: %w", op, err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, hash.ErrMismatch) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("%s: compare password failed: %w", op, err)
	}

	verified, err := s.verificationRepository.IsVerified(ctx, user.Username, user.Email1)
	if err != nil {
		return fmt.Errorf("%s: check verification failed: %w", op, err)
	}
	if !verified {
		return ErrEmailNotVerified
	}

	return nil
}
