package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vbonduro/homelist/internal/domain"
)

// blobRepository is the subset of store.BlobStore the services require.
type blobRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// propertyLookup resolves property ids; *inventory.Inventory satisfies it.
type propertyLookup interface {
	GetByID(id string) (domain.Property, bool)
}

// loadJSON decodes the blob under key into v. It reports false when the key
// has never been written.
func loadJSON(ctx context.Context, blobs blobRepository, key string, v any) (bool, error) {
	data, err := blobs.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func saveJSON(ctx context.Context, blobs blobRepository, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return blobs.Put(ctx, key, data)
}
