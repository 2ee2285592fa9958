package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLastLoginRoundTrip(t *testing.T) {
	t.Parallel()

	home := t.TempDir()

	_, ok, err := LoadLastLogin(home)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, SaveLastLogin(home, LastLogin{
		Address:   "1:100",
		ServerURL: "http://localhost:4444",
	}))

	record, ok, err := LoadLastLogin(home)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1:100", record.Address)
	require.Equal(t, "http://localhost:4444", record.ServerURL)
	require.NotZero(t, record.UpdatedAtMs)

	// No stray temp file left behind.
	_, err = os.Stat(filepath.Join(home, "last_login.json.tmp"))
	require.True(t, os.IsNotExist(err))
}

func TestSaveLastLoginRejectsEmptyAddress(t *testing.T) {
	t.Parallel()

	err := SaveLastLogin(t.TempDir(), LastLogin{})
	require.Error(t, err)
}

func TestClearLastLogin(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	require.NoError(t, ClearLastLogin(home))

	require.NoError(t, SaveLastLogin(home, LastLogin{Address: "2:55"}))
	require.NoError(t, ClearLastLogin(home))

	_, ok, err := LoadLastLogin(home)
	require.NoError(t, err)
	require.False(t, ok)
}
