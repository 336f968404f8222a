package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/aetherdigital/backend/internal/domain"
	"github.com/aetherdigital/backend/internal/service"

	"github.com/stretchr/testify/require"
)

type stubNotifications struct {
	report *service.DispatchReport
	err    error
	calls  []string
}

func (s *stubNotifications) DispatchTo(context.Context, []domain.VerificationEntry) *service.DispatchReport {
	return s.report
}

func (s *stubNotifications) SendAll(context.Context) (*service.DispatchReport, error) {
	return s.report, s.err
}

func (s *stubNotifications) SendOne(_ context.Context, username string, _ string) (*service.DispatchReport, error) {
	s.calls = append(s.calls, username)
	return s.report, s.err
}

func (s *stubNotifications) SendNewest(context.Context) (*service.DispatchReport, error) {
	return s.report, s.err
}

func TestSendVerification(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		stub      *stubNotifications
		wantErr   error
		wantCalls int
	}{
		{
			name:      "sent",
			username:  "ana",
			stub:      &stubNotifications{report: &service.DispatchReport{Sent: 1}},
			wantCalls: 1,
		},
		{
			name:      "already verified",
			username:  "ana",
			stub:      &stubNotifications{report: &service.DispatchReport{Message: "not found or already verified"}},
			wantCalls: 1,
		},
		{
			name:     "transport failure is retryable",
			username: "ana",
			stub: &stubNotifications{report: &service.DispatchReport{Errors: []service.DispatchError{
				{Username: "ana", Reason: service.DispatchTransportFailure, Error: "dial tcp: timeout"},
			}}},
			wantErr:   service.ErrTransportFailure,
			wantCalls: 1,
		},
		{
			name:     "missing contact is permanent",
			username: "ana",
			stub: &stubNotifications{report: &service.DispatchReport{Errors: []service.DispatchError{
				{Username: "ana", Reason: service.DispatchMissingContact, Error: "username or email missing"},
			}}},
			wantErr:   ErrPermanent,
			wantCalls: 1,
		},
		{
			name:    "empty username",
			stub:    &stubNotifications{},
			wantErr: ErrPermanent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newVerificationSender(tt.stub).SendVerification(context.Background(), tt.username)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Len(t, tt.stub.calls, tt.wantCalls)
		})
	}
}

func TestSendVerification_StoreError(t *testing.T) {
	storeErr := errors.New("disk full")
	err := newVerificationSender(&stubNotifications{err: storeErr}).SendVerification(context.Background(), "ana")
	require.ErrorIs(t, err, storeErr)
	require.NotErrorIs(t, err, ErrPermanent)
}
