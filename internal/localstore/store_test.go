package localstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_GetSetRemove(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Get(KeyLikes)
	require.NoError(t, err)
	assert.False(t, ok, "missing key reads as absent, not as an error")

	require.NoError(t, store.Set(KeyLikes, `[{"articleId":"a1"}]`))

	value, ok, err := store.Get(KeyLikes)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"articleId":"a1"}]`, value)

	require.NoError(t, store.Set(KeyLikes, "[]"))
	value, ok, err = store.Get(KeyLikes)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", value, "last writer wins")

	require.NoError(t, store.Remove(KeyLikes))
	_, ok, err = store.Get(KeyLikes)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_RemoveAbsentKeyIsNoOp(t *testing.T) {
	store := openTestStore(t)
	assert.NoError(t, store.Remove("never_written"))
}

func TestStore_KeysAreIndependent(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set(KeyLikes, "likes"))
	require.NoError(t, store.Set(KeyBookmarks, "bookmarks"))
	require.NoError(t, store.Remove(KeyLikes))

	value, ok, err := store.Get(KeyBookmarks)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "bookmarks", value)
}
