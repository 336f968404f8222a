package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackend_LoadMissing(t *testing.T) {
	b, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	data, err := b.Load(context.Background(), "usuarios.json")
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestFileBackend_ReplaceLoad(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, b.Replace(ctx, "lista.json", []byte(`[1]`)))
	require.NoError(t, b.Replace(ctx, "lista.json", []byte(`[1,2]`)))

	data, err := b.Load(ctx, "lista.json")
	require.NoError(t, err)
	require.Equal(t, `[1,2]`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	require.Equal(t, "lista.json", entries[0].Name())
}

func TestFileBackend_FailedReplaceKeepsPreviousVersion(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, b.Replace(ctx, "lista.json", []byte(`old`)))

	// a directory in the way makes the final rename fail
	target := filepath.Join(dir, "blocked.json")
	require.NoError(t, os.Mkdir(target, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(target, "x"), []byte("x"), 0o600))
	require.Error(t, b.Replace(ctx, "blocked.json", []byte(`new`)))

	data, err := b.Load(ctx, "lista.json")
	require.NoError(t, err)
	require.Equal(t, `old`, string(data))

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestFileBackend_RejectsPathNames(t *testing.T) {
	b, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	_, err = b.Load(context.Background(), "../etc/passwd")
	require.Error(t, err)
	require.Error(t, b.Replace(context.Background(), "", nil))
}

func TestNewFileBackend_EmptyDir(t *testing.T) {
	_, err := NewFileBackend("")
	require.Error(t, err)
}

func TestFileBackend_UpdateSkipsNilWrite(t *testing.T) {
	b, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	err = b.Update(ctx, "lista.json", func(current []byte) ([]byte, error) {
		require.Nil(t, current)
		return nil, nil
	})
	require.NoError(t, err)

	data, err := b.Load(ctx, "lista.json")
	require.NoError(t, err)
	require.Nil(t, data)

	failure := errors.New("rejected")
	err = b.Update(ctx, "lista.json", func([]byte) ([]byte, error) { return []byte(`[1]`), failure })
	require.ErrorIs(t, err, failure)

	data, err = b.Load(ctx, "lista.json")
	require.NoError(t, err)
	require.Nil(t, data)
}

// Two backends over one directory stand in for the API and the sendbulk command.
func TestFileBackend_UpdateExcludesOtherBackends(t *testing.T) {
	dir := t.TempDir()
	first, err := NewFileBackend(dir)
	require.NoError(t, err)
	second, err := NewFileBackend(dir)
	require.NoError(t, err)
	ctx := context.Background()

	increment := func(current []byte) ([]byte, error) {
		n := 0
		if len(current) > 0 {
			var err error
			if n, err = strconv.Atoi(string(current)); err != nil {
				return nil, err
			}
		}
		return []byte(strconv.Itoa(n + 1)), nil
	}

	const perBackend = 100
	var wg sync.WaitGroup
	for _, b := range []*FileBackend{first, second} {
		wg.Add(1)
		go func(b *FileBackend) {
			defer wg.Done()
			for i := 0; i < perBackend; i++ {
				assert.NoError(t, b.Update(ctx, "counter.json", increment))
			}
		}(b)
	}
	wg.Wait()

	data, err := first.Load(ctx, "counter.json")
	require.NoError(t, err)
	require.Equal(t, strconv.Itoa(2*perBackend), string(data))
}
