package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	b, err := New(TypeFile, Deps{Dir: t.TempDir()})
	require.NoError(t, err)
	require.IsType(t, &FileBackend{}, b)

	_, err = New(TypeMySQL, Deps{})
	require.Error(t, err)

	_, err = New(TypeRedis, Deps{})
	require.Error(t, err)

	_, err = New("mongo", Deps{})
	require.EqualError(t, err, `unknown storage type "mongo"`)
}
