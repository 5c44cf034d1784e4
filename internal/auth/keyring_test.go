package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := newFileStore(t)
	assert.False(t, store.UsingKeyring())

	creds := &Credentials{AccessToken: "acc", RefreshToken: "ref", UserID: "u-1"}
	require.NoError(t, store.Save("api.example.com", creds))

	got, err := store.Load("api.example.com")
	require.NoError(t, err)
	assert.Equal(t, creds, got)

	require.NoError(t, store.Delete("api.example.com"))
	_, err = store.Load("api.example.com")
	assert.Error(t, err)
}

func TestFileStoreSeparateOrigins(t *testing.T) {
	store := newFileStore(t)

	require.NoError(t, store.Save("staging.example.com", &Credentials{AccessToken: "s"}))
	require.NoError(t, store.Save("prod.example.com", &Credentials{AccessToken: "p"}))

	got, err := store.Load("staging.example.com")
	require.NoError(t, err)
	assert.Equal(t, "s", got.AccessToken)

	require.NoError(t, store.Delete("staging.example.com"))

	got, err = store.Load("prod.example.com")
	require.NoError(t, err)
	assert.Equal(t, "p", got.AccessToken)
}

func TestFileStorePermissions(t *testing.T) {
	t.Setenv("RSQ_NO_KEYRING", "1")
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, store.Save("api.example.com", &Credentials{AccessToken: "acc"}))

	info, err := os.Stat(filepath.Join(dir, "credentials.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStoreOverwrite(t *testing.T) {
	store := newFileStore(t)

	require.NoError(t, store.Save("api.example.com", &Credentials{AccessToken: "old", RefreshToken: "old-r"}))
	require.NoError(t, store.Save("api.example.com", &Credentials{AccessToken: "new", RefreshToken: "new-r", UserID: "u-9"}))

	got, err := store.Load("api.example.com")
	require.NoError(t, err)
	assert.Equal(t, "new", got.AccessToken)
	assert.Equal(t, "u-9", got.UserID)
}
