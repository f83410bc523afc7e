package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/vbonduro/homelist/internal/domain"
)

const cartKey = "cart"

// CartService keeps the ordered list of property ids a visitor has put in
// their cart.
type CartService struct {
	mu      sync.Mutex
	blobs   blobRepository
	catalog propertyLookup
	logger  *slog.Logger
}

func NewCartService(blobs blobRepository, catalog propertyLookup, logger *slog.Logger) *CartService {
	return &CartService{blobs: blobs, catalog: catalog, logger: logger}
}

// Add appends id to the cart. Unknown ids yield domain.ErrNotFound and ids
// already in the cart yield domain.ErrDuplicateKey.
func (s *CartService) Add(ctx context.Context, id string) error {
	if _, ok := s.catalog.GetByID(id); !ok {
		return fmt.Errorf("property %q: %w", id, domain.ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.ids(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(ids, id) {
		return fmt.Errorf("property %q already in cart: %w", id, domain.ErrDuplicateKey)
	}

	if err := saveJSON(ctx, s.blobs, cartKey, append(ids, id)); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	s.logger.Info("added to cart", "property_id", id, "count", len(ids)+1)
	return nil
}

func (s *CartService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.ids(ctx)
	if err != nil {
		return err
	}
	idx := slices.Index(ids, id)
	if idx < 0 {
		return fmt.Errorf("property %q not in cart: %w", id, domain.ErrNotFound)
	}

	if err := saveJSON(ctx, s.blobs, cartKey, slices.Delete(ids, idx, idx+1)); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	s.logger.Info("removed from cart", "property_id", id)
	return nil
}

// List resolves the cart against the catalog. Ids whose property has since
// left the inventory are skipped.
func (s *CartService) List(ctx context.Context) ([]domain.Property, error) {
	s.mu.Lock()
	ids, err := s.ids(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := make([]domain.Property, 0, len(ids))
	for _, id := range ids {
		p, ok := s.catalog.GetByID(id)
		if !ok {
			s.logger.Debug("skipping stale cart entry", "property_id", id)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *CartService) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.ids(ctx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (s *CartService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.blobs.Delete(ctx, cartKey); err != nil {
		return fmt.Errorf("failed to reset cart: %w", err)
	}
	return nil
}

func (s *CartService) ids(ctx context.Context) ([]string, error) {
	var ids []string
	if _, err := loadJSON(ctx, s.blobs, cartKey, &ids); err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return ids, nil
}
