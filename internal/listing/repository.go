package listing

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/vbonduro/homelist/internal/domain"
)

// Repository is the read-only property catalog. It is created once at
// startup and handed to whatever needs to look properties up.
type Repository struct {
	properties []domain.Property
	byID       map[string]int
}

// NewRepository indexes props. Duplicate IDs are rejected.
func NewRepository(props []domain.Property) (*Repository, error) {
	r := &Repository{
		properties: make([]domain.Property, 0, len(props)),
		byID:       make(map[string]int, len(props)),
	}
	for _, p := range props {
		if _, exists := r.byID[p.ID]; exists {
			return nil, fmt.Errorf("property %q: %w", p.ID, domain.ErrDuplicateKey)
		}
		r.byID[p.ID] = len(r.properties)
		r.properties = append(r.properties, p)
	}
	return r, nil
}

// NewSeedRepository returns a repository over the built-in catalog.
func NewSeedRepository() *Repository {
	r, err := NewRepository(Seed())
	if err != nil {
		panic(err)
	}
	return r
}

// LoadCatalog reads a JSON array of properties from path.
func LoadCatalog(path string) (*Repository, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var props []domain.Property
	if err := json.Unmarshal(b, &props); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return NewRepository(props)
}

func (r *Repository) All() []domain.Property {
	out := make([]domain.Property, len(r.properties))
	copy(out, r.properties)
	return out
}

func (r *Repository) Len() int {
	return len(r.properties)
}

func (r *Repository) GetByID(id string) (domain.Property, bool) {
	i, ok := r.byID[id]
	if !ok {
		return domain.Property{}, false
	}
	return r.properties[i], true
}

func (r *Repository) GetByType(t domain.PropertyType) []domain.Property {
	return r.where(func(p domain.Property) bool { return p.Type == t })
}

// GetByLocation matches a case-sensitive substring of the location.
func (r *Repository) GetByLocation(substr string) []domain.Property {
	return r.where(func(p domain.Property) bool { return strings.Contains(p.Location, substr) })
}

// GetByPriceRange keeps properties whose Price.Magnitude lies in [min, max].
// Magnitudes ignore currency and unit suffix, so ranges only make sense
// within a single currency written without suffixes.
func (r *Repository) GetByPriceRange(min, max int64) []domain.Property {
	return r.where(func(p domain.Property) bool {
		m := p.Price.Magnitude()
		return m >= min && m <= max
	})
}

func (r *Repository) where(keep func(domain.Property) bool) []domain.Property {
	out := make([]domain.Property, 0)
	for _, p := range r.properties {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
