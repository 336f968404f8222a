package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aetherdigital/backend/internal/domain"

	"github.com/stretchr/testify/require"
)

func records(usernames ...string) []domain.UserRecord {
	out := make([]domain.UserRecord, 0, len(usernames))
	for _, u := range usernames {
		out = append(out, *newRecord(u, u+"@x.com", u))
	}
	return out
}

func TestVerificationRepository_ResyncNewUsersUnverified(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	entries, err := repos.Verifications.Resync(ctx, records("ana", "bob"))
	require.NoError(t, err)
	require.Equal(t, []domain.VerificationEntry{
		{Username: "ana", Email: "ana@x.com"},
		{Username: "bob", Email: "bob@x.com"},
	}, entries)

	listed, err := repos.Verifications.List(ctx)
	require.NoError(t, err)
	require.Equal(t, entries, listed)
}

func TestVerificationRepository_ResyncPreservesVerified(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	_, err := repos.Verifications.Resync(ctx, records("ana"))
	require.NoError(t, err)

	confirmed, err := repos.Verifications.SetVerified(ctx, "ana")
	require.NoError(t, err)
	require.True(t, confirmed.Verified)
	require.NotNil(t, confirmed.VerifiedAt)

	entries, err := repos.Verifications.Resync(ctx, records("ana", "carl"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.True(t, entries[0].Verified)
	require.Equal(t, confirmed.VerifiedAt.Unix(), entries[0].VerifiedAt.Unix())
	require.False(t, entries[1].Verified)

	ok, err := repos.Verifications.IsVerified(ctx, "ana", "")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerificationRepository_ResyncStaleSnapshotKeepsRows(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	_, err := repos.Verifications.Resync(ctx, records("ana", "bob"))
	require.NoError(t, err)

	entries, err := repos.Verifications.Resync(ctx, records("ana"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "bob", entries[1].Username)
}

func TestVerificationRepository_ResyncSkipsIncompleteRecords(t *testing.T) {
	repos, _ := newTestRepositories(t)

	users := records("ana")
	users = append(users, domain.UserRecord{Username: "nomail"}, domain.UserRecord{Email1: "x@x.com"})

	entries, err := repos.Verifications.Resync(context.Background(), users)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestVerificationRepository_SetVerifiedIdempotent(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	_, err := repos.Verifications.Resync(ctx, records("ana"))
	require.NoError(t, err)

	first, err := repos.Verifications.SetVerified(ctx, "ana")
	require.NoError(t, err)

	second, err := repos.Verifications.SetVerified(ctx, "ana")
	require.NoError(t, err)
	require.True(t, second.Verified)
	require.Equal(t, first.VerifiedAt.Unix(), second.VerifiedAt.Unix())
}

func TestVerificationRepository_SetVerifiedNotFound(t *testing.T) {
	repos, _ := newTestRepositories(t)

	_, err := repos.Verifications.SetVerified(context.Background(), "ghost")
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestVerificationRepository_SetVerifiedSkipsWriteWhenUnchanged(t *testing.T) {
	backend := newMemoryBackend()
	repo := newVerificationRepository(backend, "lista.json")
	repo.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	_, err := repo.Resync(ctx, records("ana"))
	require.NoError(t, err)
	_, err = repo.SetVerified(ctx, "ana")
	require.NoError(t, err)
	writes := backend.replaces

	entry, err := repo.SetVerified(ctx, "ana")
	require.NoError(t, err)
	require.Equal(t, writes, backend.replaces)
	require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *entry.VerifiedAt)
}

func TestVerificationRepository_IsVerifiedByEmail(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	_, err := repos.Verifications.Resync(ctx, records("ana", "bob"))
	require.NoError(t, err)
	_, err = repos.Verifications.SetVerified(ctx, "ana")
	require.NoError(t, err)

	ok, err := repos.Verifications.IsVerified(ctx, "", "ANA@x.com ")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repos.Verifications.IsVerified(ctx, "bob", "bob@x.com")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = repos.Verifications.IsVerified(ctx, "", "")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerificationRepository_ConcurrentResyncAndConfirm(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	_, err := repos.Verifications.Resync(ctx, records("ana"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = repos.Verifications.Resync(ctx, records("ana", "bob"))
		}()
		go func() {
			defer wg.Done()
			_, _ = repos.Verifications.SetVerified(ctx, "ana")
		}()
	}
	wg.Wait()

	ok, err := repos.Verifications.IsVerified(ctx, "ana", "")
	require.NoError(t, err)
	require.True(t, ok)
}
