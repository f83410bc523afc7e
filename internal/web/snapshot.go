package web

import (
	"slices"
	"sync"

	"github.com/vbonduro/homelist/internal/domain"
)

// snapshotCache is an inventory observer holding the latest list for
// GET /inventory.
type snapshotCache struct {
	mu         sync.RWMutex
	properties []domain.Property
}

func (c *snapshotCache) Update(properties []domain.Property) error {
	c.mu.Lock()
	c.properties = properties
	c.mu.Unlock()
	return nil
}

func (c *snapshotCache) Properties() []domain.Property {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.properties == nil {
		return []domain.Property{}
	}
	return slices.Clone(c.properties)
}
