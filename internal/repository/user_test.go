package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/aetherdigital/backend/internal/domain"

	"github.com/stretchr/testify/require"
)

func newRecord(username, email, taxID string) *domain.UserRecord {
	return &domain.UserRecord{
		Username:     username,
		Email1:       email,
		Email2:       email,
		PasswordHash: "hash",
		Birthdate:    "2000-01-01",
		TaxID:        taxID,
	}
}

func TestUserRepository_AppendLoadAll(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	require.NoError(t, repos.Users.Append(ctx, newRecord("ana", "a@x.com", "111")))

	users, err := repos.Users.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "ana", users[0].Username)

	user, err := repos.Users.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email1)

	_, err = repos.Users.GetByUsername(ctx, "bob")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_AppendDuplicates(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	require.NoError(t, repos.Users.Append(ctx, newRecord("ana", "a@x.com", "111.444.777-35")))

	cases := []struct {
		name   string
		record *domain.UserRecord
		field  string
	}{
		{"username", newRecord("ana", "other@x.com", "999"), domain.FieldUsername},
		{"email", newRecord("bob", "a@x.com", "999"), domain.FieldEmail},
		{"tax id", newRecord("bob", "b@x.com", "11144477735"), domain.FieldTaxID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := repos.Users.Append(ctx, tc.record)
			require.ErrorIs(t, err, domain.ErrDuplicateEntry)

			var dup *domain.DuplicateFieldError
			require.True(t, errors.As(err, &dup))
			require.Equal(t, tc.field, dup.Field)
		})
	}

	users, err := repos.Users.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1, "rejected appends must not mutate the store")
}

func TestUserRepository_AppendInvalid(t *testing.T) {
	repos, _ := newTestRepositories(t)

	record := newRecord("ana", "a@x.com", "111")
	record.Email2 = "b@x.com"

	require.ErrorIs(t, repos.Users.Append(context.Background(), record), domain.ErrInvalidRecord)
}

func TestUserRepository_ConcurrentAppendsNoLostUpdate(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	const n = 40
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repos.Users.Append(ctx, newRecord(fmt.Sprintf("user%d", i), fmt.Sprintf("u%d@x.com", i), fmt.Sprintf("%d", 1000+i)))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	users, err := repos.Users.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, n)
}

func TestUserRepository_ConcurrentSameUsernameAppendsOnce(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	const n = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repos.Users.Append(ctx, newRecord("ana", fmt.Sprintf("a%d@x.com", i), fmt.Sprintf("%d", 1000+i)))
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, success)
}

func TestUserRepository_CorruptDocument(t *testing.T) {
	repos, backend := newTestRepositories(t)
	ctx := context.Background()

	require.NoError(t, backend.Replace(ctx, "usuarios.json", []byte(`{not json`)))

	_, err := repos.Users.LoadAll(ctx)
	require.Error(t, err)

	require.Error(t, repos.Users.Append(ctx, newRecord("ana", "a@x.com", "111")))

	data, err := backend.Load(ctx, "usuarios.json")
	require.NoError(t, err)
	require.Equal(t, `{not json`, string(data), "a corrupt store must not be overwritten")
}
