package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/aetherdigital/backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsedTokenRepository(t *testing.T) {
	repos, backend := newTestRepositories(t)
	ctx := context.Background()

	used, err := repos.UsedTokens.IsUsed(ctx, "n1")
	require.NoError(t, err)
	require.False(t, used)

	require.NoError(t, repos.UsedTokens.MarkUsed(ctx, "n2"))
	require.NoError(t, repos.UsedTokens.MarkUsed(ctx, "n1"))
	require.ErrorIs(t, repos.UsedTokens.MarkUsed(ctx, "n1"), domain.ErrDuplicateEntry)

	used, err = repos.UsedTokens.IsUsed(ctx, "n1")
	require.NoError(t, err)
	require.True(t, used)

	count, err := repos.UsedTokens.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	data, err := backend.Load(ctx, "tokens_used.json")
	require.NoError(t, err)
	require.JSONEq(t, `["n1","n2"]`, string(data))
}

func TestUsedTokenRepository_UnsortedDocument(t *testing.T) {
	backend := newMemoryBackend()
	repo := newUsedTokenRepository(backend, "tokens_used.json")
	ctx := context.Background()

	backend.docs["tokens_used.json"] = []byte(`["c","a"]`)

	require.NoError(t, repo.MarkUsed(ctx, "a"))
	require.NoError(t, repo.MarkUsed(ctx, "b"))
	require.JSONEq(t, `["a","b","c"]`, string(backend.docs["tokens_used.json"]))
}

func TestUsedTokenRepository_MarkUsedErrors(t *testing.T) {
	backend := newMemoryBackend()
	repo := newUsedTokenRepository(backend, "tokens_used.json")
	ctx := context.Background()

	require.Error(t, repo.MarkUsed(ctx, ""))

	backend.failWith = errors.New("disk full")
	require.ErrorContains(t, repo.MarkUsed(ctx, "n1"), "disk full")
}

func TestUsedTokenRepository_ConcurrentMarkUsed(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repos.UsedTokens.MarkUsed(ctx, fmt.Sprintf("n%02d", i)))
		}(i)
	}
	wg.Wait()

	count, err := repos.UsedTokens.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 30, count)
}
