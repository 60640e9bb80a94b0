package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "settings.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_BoolRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.SetBool(ShowOriginalThumbnailKey, true))

	got, err := store.GetBool(ShowOriginalThumbnailKey)
	require.NoError(t, err)
	assert.True(t, got)
	assert.True(t, store.Bool(ShowOriginalThumbnailKey))

	require.NoError(t, store.SetBool(ShowOriginalThumbnailKey, false))
	assert.False(t, store.Bool(ShowOriginalThumbnailKey))
}

func TestStore_MissingKey(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetBool("never-written")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, store.Bool("never-written"))
}

func TestStore_Toggle(t *testing.T) {
	store := setupTestStore(t)

	v, err := store.Toggle(ShowOriginalThumbnailKey)
	require.NoError(t, err)
	assert.True(t, v)

	v, err = store.Toggle(ShowOriginalThumbnailKey)
	require.NoError(t, err)
	assert.False(t, v)
	assert.False(t, store.Bool(ShowOriginalThumbnailKey))
}

func TestStore_Delete(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.SetBool("k", true))
	require.NoError(t, store.Delete("k"))
	require.NoError(t, store.Delete("k"))
	assert.False(t, store.Bool("k"))
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.db")

	store, err := NewStore(path, time.Second)
	require.NoError(t, err)
	require.NoError(t, store.SetBool(ShowOriginalThumbnailKey, true))
	require.NoError(t, store.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	reopened, err := NewStore(path, 0)
	require.NoError(t, err)
	defer reopened.Close()
	assert.True(t, reopened.Bool(ShowOriginalThumbnailKey))
}

func TestStore_CorruptValueReadsFalse(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.put("raw", "not-a-bool"))
	_, err := store.GetBool("raw")
	assert.Error(t, err)
	assert.False(t, store.Bool("raw"))
}
