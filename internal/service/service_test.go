package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vbonduro/homelist/internal/db"
	"github.com/vbonduro/homelist/internal/inventory"
	"github.com/vbonduro/homelist/internal/listing"
	"github.com/vbonduro/homelist/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestDeps returns a blob store on a fresh in-memory database and an
// inventory seeded with the built-in listings.
func newTestDeps(t *testing.T) (*store.BlobStore, *inventory.Inventory) {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	return store.NewBlobStore(d), inventory.New(listing.Seed())
}

// failingBlobs fails every call.
type failingBlobs struct{}

var errStorage = errors.New("disk on fire")

func (failingBlobs) Get(context.Context, string) ([]byte, error) { return nil, errStorage }
func (failingBlobs) Put(context.Context, string, []byte) error   { return errStorage }
func (failingBlobs) Delete(context.Context, string) error        { return errStorage }
