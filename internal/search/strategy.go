package search

import (
	"strings"

	"github.com/mmcloughlin/geohash"

	"github.com/vbonduro/homelist/internal/domain"
)

// Source is anything that can list the properties to search over.
// *listing.Repository and *inventory.Inventory both satisfy it.
type Source interface {
	All() []domain.Property
}

// Strategy is one way of matching properties against criteria.
type Strategy interface {
	Search(c domain.SearchCriteria) []domain.Property
}

// BasicSearch matches the term as a case-insensitive substring of the title.
// An empty term matches everything.
type BasicSearch struct {
	src Source
}

func NewBasicSearch(src Source) *BasicSearch {
	return &BasicSearch{src: src}
}

func (s *BasicSearch) Search(c domain.SearchCriteria) []domain.Property {
	term := strings.ToLower(strings.TrimSpace(c.Term))
	out := make([]domain.Property, 0)
	for _, p := range s.src.All() {
		if strings.Contains(strings.ToLower(p.Title), term) {
			out = append(out, p)
		}
	}
	return out
}

// AdvancedSearch requires every set clause to hold: price within
// [MinPrice, MaxPrice], exact location and exact type.
type AdvancedSearch struct {
	src Source
}

func NewAdvancedSearch(src Source) *AdvancedSearch {
	return &AdvancedSearch{src: src}
}

func (s *AdvancedSearch) Search(c domain.SearchCriteria) []domain.Property {
	f := FiltersFrom(c)
	out := make([]domain.Property, 0)
	for _, p := range s.src.All() {
		if f.inPriceRange(p) && f.atLocation(p) && f.ofType(p) {
			out = append(out, p)
		}
	}
	return out
}

// MapSearch returns properties whose coordinates fall inside the geohash
// cell named by the criteria. Without a cell it matches nothing.
type MapSearch struct {
	src Source
}

func NewMapSearch(src Source) *MapSearch {
	return &MapSearch{src: src}
}

func (s *MapSearch) Search(c domain.SearchCriteria) []domain.Property {
	out := make([]domain.Property, 0)
	cell := strings.ToLower(strings.TrimSpace(c.Geohash))
	if cell == "" {
		return out
	}
	for _, p := range s.src.All() {
		if p.Coordinates == nil {
			continue
		}
		if strings.HasPrefix(geohash.Encode(p.Coordinates.Lat, p.Coordinates.Lon), cell) {
			out = append(out, p)
		}
	}
	return out
}
