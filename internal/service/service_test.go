package service

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/aetherdigital/backend/internal/config"
	"github.com/aetherdigital/backend/internal/repository"
	"github.com/aetherdigital/backend/internal/storage"
	"github.com/aetherdigital/backend/pkg/auth"
	emailProvider "github.com/aetherdigital/backend/pkg/email"
	mock_email "github.com/aetherdigital/backend/pkg/email/mock"
	"github.com/aetherdigital/backend/pkg/hash"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "test-secret"

type testEnv struct {
	services *Services
	repos    *repository.Repositories
	tokens   *auth.Manager
	sender   *mock_email.EmailSender
}

type testOption func(*Deps)

func withQueue(q VerificationQueue) testOption {
	return func(d *Deps) { d.Queue = q }
}

func withSendTimeout(timeout time.Duration) testOption {
	return func(d *Deps) { d.Config.Email.SendTimeout = timeout }
}

func newTestEnv(t *testing.T, opts ...testOption) *testEnv {
	t.Helper()
	return newTestEnvAt(t, t.TempDir(), opts...)
}

// newTestEnvAt builds services over the file store in dir. Two envs over one dir
// behave like two processes sharing a deployment's data directory.
func newTestEnvAt(t *testing.T, dir string, opts ...testOption) *testEnv {
	t.Helper()

	backend, err := storage.NewFileBackend(dir)
	require.NoError(t, err)

	storageConfig := config.Storage{
		Users:         "usuarios.json",
		Verifications: "lista.json",
		UsedTokens:    "tokens_used.json",
	}
	repos := repository.NewRepositories(backend, storageConfig)

	tokens, err := auth.NewManager(auth.Config{SigningKey: testSigningKey, TokenTTL: 24 * time.Hour})
	require.NoError(t, err)

	sender := new(mock_email.EmailSender)

	deps := Deps{
		Config: &config.Config{
			Verification: config.VerificationConfig{
				SigningKey:  testSigningKey,
				TokenTTL:    24 * time.Hour,
				BaseURL:     "http://localhost:5500/api/v1",
				ConfirmPath: "verif/confirm",
			},
			Storage: storageConfig,
			Email: config.EmailConfig{
				Enabled:     true,
				Subject:     "Confirme seu e-mail",
				SendTimeout: time.Second,
				Templates:   config.EmailTemplates{Verification: "verification.html"},
			},
		},
		Hasher:       hash.NewBcryptHasher(4),
		TokenManager: tokens,
		EmailSender:  sender,
		Repos:        repos,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	services, err := NewServices(deps)
	require.NoError(t, err)

	return &testEnv{services: services, repos: repos, tokens: tokens, sender: sender}
}

func (e *testEnv) signUp(t *testing.T, username, email, taxID string) *SignUpResult {
	t.Helper()

	res, err := e.services.Users.SignUp(context.Background(), SignUpInput{
		Username:  username,
		Password:  "s3cret",
		Email1:    email,
		Email2:    email,
		Birthdate: "1990-01-01",
		TaxID:     taxID,
	})
	require.NoError(t, err)

	return res
}

func tokenFromLink(t *testing.T, link string) string {
	t.Helper()

	u, err := url.Parse(link)
	require.NoError(t, err)
	require.Equal(t, "/api/v1/verif/confirm", u.Path)

	return u.Query().Get("token")
}

func sentTo(address string) interface{} {
	return mock.MatchedBy(func(in emailProvider.SendEmailInput) bool { return in.To == address })
}

type recordingQueue struct {
	mu        sync.Mutex
	usernames []string
	err       error
}

func (q *recordingQueue) EnqueueVerification(_ context.Context, username string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.usernames = append(q.usernames, username)
	return nil
}
