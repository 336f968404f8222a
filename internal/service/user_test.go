package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aetherdigital/backend/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSignUp_DispatchesInline(t *testing.T) {
	env := newTestEnv(t)
	env.sender.On("Send", sentTo("ana@example.com")).Return(nil).Once()

	res := env.signUp(t, "  ana ", "Ana@Example.com", "111.444.777-35")
	require.Equal(t, "ana", res.Username)
	require.Equal(t, "ana@example.com", res.Email)
	require.False(t, res.Queued)
	require.NotNil(t, res.Dispatch)
	require.Equal(t, 1, res.Dispatch.Sent)

	user, err := env.repos.Users.GetByUsername(context.Background(), "ana")
	require.NoError(t, err)
	require.Equal(t, "11144477735", user.TaxID)
	require.NotEqual(t, "s3cret", user.PasswordHash)

	entries, err := env.repos.Verifications.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.False(t, entries[0].Verified)

	env.sender.AssertExpectations(t)
}

func TestSignUp_Queued(t *testing.T) {
	queue := &recordingQueue{}
	env := newTestEnv(t, withQueue(queue))

	res := env.signUp(t, "ana", "ana@example.com", "11144477735")
	require.True(t, res.Queued)
	require.Nil(t, res.Dispatch)
	require.Equal(t, []string{"ana"}, queue.usernames)

	env.sender.AssertNotCalled(t, "Send", mock.Anything)
}

func TestSignUp_QueueFailureFallsBackInline(t *testing.T) {
	env := newTestEnv(t, withQueue(&recordingQueue{err: errors.New("redis down")}))
	env.sender.On("Send", mock.Anything).Return(nil).Once()

	res := env.signUp(t, "ana", "ana@example.com", "11144477735")
	require.False(t, res.Queued)
	require.Equal(t, 1, res.Dispatch.Sent)
}

func TestSignUp_Duplicates(t *testing.T) {
	env := newTestEnv(t)
	env.sender.On("Send", mock.Anything).Return(nil)

	env.signUp(t, "ana", "ana@example.com", "11144477735")

	cases := []struct {
		name  string
		input SignUpInput
		field string
	}{
		{"username", SignUpInput{Username: "ana", Email1: "b@example.com", TaxID: "222"}, domain.FieldUsername},
		{"email", SignUpInput{Username: "bob", Email1: "ANA@example.com", TaxID: "222"}, domain.FieldEmail},
		{"tax id", SignUpInput{Username: "bob", Email1: "b@example.com", TaxID: "111.444.777-35"}, domain.FieldTaxID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.input.Email2 = tc.input.Email1
			tc.input.Password = "pw"

			_, err := env.services.Users.SignUp(context.Background(), tc.input)
			require.ErrorIs(t, err, domain.ErrDuplicateEntry)

			var dup *domain.DuplicateFieldError
			require.ErrorAs(t, err, &dup)
			require.Equal(t, tc.field, dup.Field)
		})
	}
}

func TestSignUp_EmailMismatch(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.services.Users.SignUp(context.Background(), SignUpInput{
		Username: "ana",
		Password: "pw",
		Email1:   "ana@example.com",
		Email2:   "other@example.com",
		TaxID:    "1",
	})
	require.ErrorIs(t, err, ErrEmailMismatch)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.sender.On("Send", mock.Anything).Return(nil)
	env.signUp(t, "ana", "ana@example.com", "11144477735")

	ctx := context.Background()

	require.ErrorIs(t, env.services.Users.Login(ctx, "ghost", "s3cret"), ErrInvalidCredentials)
	require.ErrorIs(t, env.services.Users.Login(ctx, "ana", "wrong"), ErrInvalidCredentials)
	require.ErrorIs(t, env.services.Users.Login(ctx, "ana", "s3cret"), ErrEmailNotVerified)

	_, err := env.services.Verifications.ConfirmByUsername(ctx, "ana")
	require.NoError(t, err)

	require.NoError(t, env.services.Users.Login(ctx, "ana", "s3cret"))
}
