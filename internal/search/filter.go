package search

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vbonduro/homelist/internal/domain"
)

// Filters narrows a result set. Zero-valued fields are not applied.
type Filters struct {
	MinPrice *float64
	MaxPrice *float64
	Location string
	Type     domain.PropertyType
}

func FiltersFrom(c domain.SearchCriteria) Filters {
	return Filters{
		MinPrice: c.MinPrice,
		MaxPrice: c.MaxPrice,
		Location: c.Location,
		Type:     c.Type,
	}
}

func (f Filters) inPriceRange(p domain.Property) bool {
	if f.MinPrice != nil && p.Price.Amount < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price.Amount > *f.MaxPrice {
		return false
	}
	return true
}

func (f Filters) atLocation(p domain.Property) bool {
	return f.Location == "" || p.Location == f.Location
}

func (f Filters) ofType(p domain.Property) bool {
	return f.Type == "" || p.Type == f.Type
}

// ApplyFilters returns the members of results that pass the price range
// (inclusive), location and type clauses, in their original order.
func ApplyFilters(results []domain.Property, f Filters) []domain.Property {
	out := make([]domain.Property, 0, len(results))
	for _, p := range results {
		if f.inPriceRange(p) && f.atLocation(p) && f.ofType(p) {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns a stably ordered copy of results. Unknown keys keep the
// input order.
func Sort(results []domain.Property, by domain.SortKey) []domain.Property {
	out := slices.Clone(results)
	if out == nil {
		out = []domain.Property{}
	}

	switch by {
	case domain.SortPriceAsc:
		slices.SortStableFunc(out, func(a, b domain.Property) int {
			return compareAmount(a.Price.Amount, b.Price.Amount)
		})
	case domain.SortPriceDesc:
		slices.SortStableFunc(out, func(a, b domain.Property) int {
			return compareAmount(b.Price.Amount, a.Price.Amount)
		})
	case domain.SortLocation:
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b domain.Property) int {
			return col.CompareString(a.Location, b.Location)
		})
	}
	return out
}

func compareAmount(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
