package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/homelist/internal/db"
)

func openTestDB(t *testing.T) *sql.DB {
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestBlobStoreGetMissing(t *testing.T) {
	store := NewBlobStore(openTestDB(t))

	value, err := store.Get(context.Background(), "cart")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestBlobStorePutAndGet(t *testing.T) {
	store := NewBlobStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "cart", []byte(`["1"]`)))

	value, err := store.Get(ctx, "cart")
	require.NoError(t, err)
	assert.JSONEq(t, `["1"]`, string(value))
}

func TestBlobStorePutOverwrites(t *testing.T) {
	store := NewBlobStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "cart", []byte(`["1"]`)))
	require.NoError(t, store.Put(ctx, "cart", []byte(`["1","2"]`)))

	value, err := store.Get(ctx, "cart")
	require.NoError(t, err)
	assert.JSONEq(t, `["1","2"]`, string(value))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cart"}, keys)
}

func TestBlobStoreDelete(t *testing.T) {
	store := NewBlobStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "userProfile", []byte(`{}`)))
	require.NoError(t, store.Delete(ctx, "userProfile"))

	value, err := store.Get(ctx, "userProfile")
	require.NoError(t, err)
	assert.Nil(t, value)

	assert.NoError(t, store.Delete(ctx, "userProfile"))
}

func TestBlobStoreKeysSorted(t *testing.T) {
	store := NewBlobStore(openTestDB(t))
	ctx := context.Background()

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	for _, k := range []string{"userProfile", "cart", "userPreferences"} {
		require.NoError(t, store.Put(ctx, k, []byte(`null`)))
	}

	keys, err = store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cart", "userPreferences", "userProfile"}, keys)
}
