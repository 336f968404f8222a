package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/aetherdigital/backend/internal/config"
	"github.com/aetherdigital/backend/internal/domain"
	"github.com/aetherdigital/backend/internal/metrics"
	"github.com/aetherdigital/backend/internal/repository"
	"github.com/aetherdigital/backend/pkg/auth"
	emailProvider "github.com/aetherdigital/backend/pkg/email"
	"github.com/aetherdigital/backend/pkg/logger"

	"go.uber.org/zap"
)

const defaultSendTimeout = 10 * time.Second

// Dispatch error reasons.
const (
	DispatchMissingContact   = "MissingContact"
	DispatchTokenFailure     = "TokenFailure"
	DispatchRenderFailure    = "RenderFailure"
	DispatchTransportFailure = "TransportFailure"
)

type DispatchReport struct {
	Sent    int              `json:"sent"`
	Results []DispatchResult `json:"results"`
	Errors  []DispatchError  `json:"errors"`
	Message string           `json:"message,omitempty"`
}

type DispatchResult struct {
	Username   string `json:"username"`
	Email      string `json:"email1"`
	ConfirmURL string `json:"confirm_url"`
	Nonce      string `json:"nonce"`
}

type DispatchError struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email1,omitempty"`
	Reason   string `json:"reason"`
	Error    string `json:"error"`
}

func newDispatchReport() *DispatchReport {
	return &DispatchReport{Results: []DispatchResult{}, Errors: []DispatchError{}}
}

type notificationService struct {
	verificationRepository repository.Verifications
	tokenManager           auth.TokenManager
	sender                 emailProvider.Sender
	email                  *verificationEmail
	confirmURL             *url.URL
	sendTimeout            time.Duration
}

func newNotificationService(
	verificationRepository repository.Verifications,
	tokenManager auth.TokenManager,
	sender emailProvider.Sender,
	verificationConfig config.VerificationConfig,
	emailConfig config.EmailConfig,
) (*notificationService, error) {
	confirmURL, err := buildConfirmURL(verificationConfig.BaseURL, verificationConfig.ConfirmPath)
	if err != nil {
		return nil, err
	}

	email, err := newVerificationEmail(emailConfig)
	if err != nil {
		return nil, err
	}

	timeout := emailConfig.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	return &notificationService{
		verificationRepository: verificationRepository,
		tokenManager:           tokenManager,
		sender:                 sender,
		email:                  email,
		confirmURL:             confirmURL,
		sendTimeout:            timeout,
	}, nil
}

func buildConfirmURL(baseURL string, confirmPath string) (*url.URL, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url failed: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	return base.JoinPath(confirmPath), nil
}

func (s *notificationService) linkFor(token string) string {
	link := *s.confirmURL
	link.RawQuery = url.Values{"token": {token}}.Encode()
	return link.String()
}

// DispatchTo issues a fresh token and sends a confirmation email to every entry.
// A failing recipient is recorded in the report and never stops the batch.
func (s *notificationService) DispatchTo(ctx context.Context, entries []domain.VerificationEntry) *DispatchReport {
	report := newDispatchReport()

	for _, entry := range entries {
		if !entry.HasContact() {
			report.Errors = append(report.Errors, DispatchError{
				Username: entry.Username,
				Email:    entry.Email,
				Reason:   DispatchMissingContact,
				Error:    ErrMissingContact.Error(),
			})
			metrics.VerificationEmails.WithLabelValues(metrics.EmailSkipped).Inc()
			continue
		}

		result, reason, err := s.dispatchOne(ctx, entry)
		if err != nil {
			report.Errors = append(report.Errors, DispatchError{
				Username: entry.Username,
				Email:    entry.Email,
				Reason:   reason,
				Error:    err.Error(),
			})
			metrics.VerificationEmails.WithLabelValues(metrics.EmailFailed).Inc()
			logger.Error("confirmation email failed",
				zap.Error(err),
				zap.String("username", entry.Username),
				zap.String("email", entry.Email),
				zap.String("reason", reason))
			continue
		}

		report.Sent++
		report.Results = append(report.Results, *result)
		metrics.VerificationEmails.WithLabelValues(metrics.EmailSent).Inc()
		logger.Info("confirmation email sent",
			zap.String("username", entry.Username),
			zap.String("email", entry.Email),
			zap.String("nonce", result.Nonce))
	}

	return report
}

func (s *notificationService) dispatchOne(ctx context.Context, entry domain.VerificationEntry) (*DispatchResult, string, error) {
	issued, err := s.tokenManager.Issue(entry.Username)
	if err != nil {
		return nil, DispatchTokenFailure, fmt.Errorf("issue token failed: %w", err)
	}

	link := s.linkFor(issued.Value)
	input, err := s.email.build(entry.Email, verificationEmailInput{
		Username:       entry.Username,
		ConfirmURL:     link,
		ExpiresInHours: int(s.tokenManager.TTL().Hours()),
	})
	if err != nil {
		return nil, DispatchRenderFailure, err
	}

	if err := s.send(ctx, input); err != nil {
		return nil, DispatchTransportFailure, fmt.Errorf("%w: %w", ErrTransportFailure, err)
	}

	return &DispatchResult{
		Username:   entry.Username,
		Email:      entry.Email,
		ConfirmURL: link,
		Nonce:      issued.Nonce,
	}, "", nil
}

// send bounds the transport call by sendTimeout. A send that outlives it is reported
// as failed; the transport goroutine ends at its own session deadline.
func (s *notificationService) send(ctx context.Context, input emailProvider.SendEmailInput) error {
	ctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.sender.Send(input)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("send timed out after %s", s.sendTimeout)
		}
		return ctx.Err()
	}
}

func (s *notificationService) pending(ctx context.Context) ([]domain.VerificationEntry, error) {
	entries, err := s.verificationRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list verifications failed: %w", err)
	}

	pending := make([]domain.VerificationEntry, 0, len(entries))
	for _, entry := range entries {
		if !entry.Verified {
			pending = append(pending, entry)
		}
	}

	return pending, nil
}

func nothingPending(message string) *DispatchReport {
	report := newDispatchReport()
	report.Message = message
	return report
}

// SendAll dispatches to every unverified entry.
func (s *notificationService) SendAll(ctx context.Context) (*DispatchReport, error) {
	pending, err := s.pending(ctx)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nothingPending("nothing pending"), nil
	}

	return s.DispatchTo(ctx, pending), nil
}

// SendOne dispatches to the unverified entry matching username, or email when username
// is empty.
func (s *notificationService) SendOne(ctx context.Context, username string, email string) (*DispatchReport, error) {
	if username == "" && email == "" {
		return nil, ErrMissingSelector
	}

	pending, err := s.pending(ctx)
	if err != nil {
		return nil, err
	}

	for _, entry := range pending {
		if username != "" && entry.Username == username ||
			username == "" && entry.MatchesEmail(email) {
			return s.DispatchTo(ctx, []domain.VerificationEntry{entry}), nil
		}
	}

	return nothingPending("not found or already verified"), nil
}

// SendNewest dispatches to the most recently added unverified entry.
func (s *notificationService) SendNewest(ctx context.Context) (*DispatchReport, error) {
	pending, err := s.pending(ctx)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nothingPending("nothing pending"), nil
	}

	return s.DispatchTo(ctx, pending[len(pending)-1:]), nil
}
