package filestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/graphene-portal/internal/errors"
	"github.com/jrsteele09/graphene-portal/sessions/filestore"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SetGetRemove(t *testing.T) {
	dir := t.TempDir()
	fs, err := filestore.New(dir)
	require.NoError(t, err)

	_, err = fs.Get("device/gtlb.session.v1")
	require.ErrorIs(t, err, errors.ErrNotFound)

	require.NoError(t, fs.Set("device/gtlb.session.v1", []byte(`{"a":1}`)))
	got, err := fs.Get("device/gtlb.session.v1")
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, fs.Set("device/gtlb.session.v1", []byte(`{"a":2}`)))
	got, err = fs.Get("device/gtlb.session.v1")
	require.NoError(t, err)
	require.Equal(t, `{"a":2}`, string(got))

	require.NoError(t, fs.Remove("device/gtlb.session.v1"))
	_, err = fs.Get("device/gtlb.session.v1")
	require.ErrorIs(t, err, errors.ErrNotFound)

	require.NoError(t, fs.Remove("device/gtlb.session.v1"), "removing twice is fine")
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	fs, err := filestore.New(dir)
	require.NoError(t, err)
	require.NoError(t, fs.Set("k", []byte("v")))

	reopened, err := filestore.New(dir)
	require.NoError(t, err)
	got, err := reopened.Get("k")
	require.NoError(t, err)
	require.Equal(t, "v", string(got))
}

func TestFileStore_KeysStayInsideDirectory(t *testing.T) {
	dir := t.TempDir()
	fs, err := filestore.New(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Set("../../escape", []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	_, err = os.Stat(filepath.Join(dir, "..", "..", "escape.json"))
	require.True(t, os.IsNotExist(err))
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	fs, err := filestore.New(dir)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, fs.Set("slot", []byte("v")))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "slot.json", entries[0].Name())
}

func TestFileStore_InvalidKeys(t *testing.T) {
	fs, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", ".", ".."} {
		require.ErrorIs(t, fs.Set(key, []byte("x")), errors.ErrInvalid)
		_, err := fs.Get(key)
		require.ErrorIs(t, err, errors.ErrInvalid)
	}

	_, err = filestore.New("")
	require.Error(t, err)
}
