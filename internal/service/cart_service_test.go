package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/homelist/internal/domain"
	"github.com/vbonduro/homelist/internal/inventory"
)

func newTestCart(t *testing.T) (*CartService, *inventory.Inventory) {
	t.Helper()
	blobs, inv := newTestDeps(t)
	return NewCartService(blobs, inv, discardLogger()), inv
}

func cartIDs(props []domain.Property) []string {
	ids := make([]string, len(props))
	for i, p := range props {
		ids[i] = p.ID
	}
	return ids
}

func TestCartAddAndList(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "3"))
	require.NoError(t, svc.Add(ctx, "1"))

	props, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1"}, cartIDs(props))

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCartEmpty(t *testing.T) {
	svc, _ := newTestCart(t)

	props, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, props)
	assert.NotNil(t, props)
}

func TestCartAddUnknown(t *testing.T) {
	svc, _ := newTestCart(t)

	err := svc.Add(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartAddDuplicate(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "2"))
	err := svc.Add(ctx, "2")
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCartRemove(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "1"))
	require.NoError(t, svc.Add(ctx, "2"))
	require.NoError(t, svc.Remove(ctx, "1"))

	props, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, cartIDs(props))

	assert.ErrorIs(t, svc.Remove(ctx, "1"), domain.ErrNotFound)
}

func TestCartListSkipsRemovedProperties(t *testing.T) {
	svc, inv := newTestCart(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "1"))
	require.NoError(t, svc.Add(ctx, "4"))
	require.NoError(t, inv.RemoveProperty("1"))

	props, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, cartIDs(props))

	// The stale id is still counted until removed.
	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCartReset(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "1"))
	require.NoError(t, svc.Reset(ctx))

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCartStorageErrors(t *testing.T) {
	_, inv := newTestDeps(t)
	svc := NewCartService(failingBlobs{}, inv, discardLogger())
	ctx := context.Background()

	assert.ErrorIs(t, svc.Add(ctx, "1"), errStorage)
	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, errStorage)
	assert.ErrorIs(t, svc.Reset(ctx), errStorage)
}
