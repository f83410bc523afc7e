package search

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vbonduro/homelist/internal/domain"
)

// Constructor builds a strategy over src.
type Constructor func(src Source) Strategy

// Factory maps each search kind to the constructor of its strategy.
// Kinds with no entry are rejected with domain.ErrInvalidSearchKind.
type Factory struct {
	src Source

	mu    sync.RWMutex
	table map[domain.SearchKind]Constructor
}

func NewFactory(src Source) *Factory {
	return &Factory{
		src: src,
		table: map[domain.SearchKind]Constructor{
			domain.KindBasic:    func(s Source) Strategy { return NewBasicSearch(s) },
			domain.KindAdvanced: func(s Source) Strategy { return NewAdvancedSearch(s) },
			domain.KindMap:      func(s Source) Strategy { return NewMapSearch(s) },
		},
	}
}

// Register installs or replaces the strategy used for kind.
func (f *Factory) Register(kind domain.SearchKind, ctor Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.table[kind] = ctor
}

// Create returns the strategy for kind. An empty kind means basic.
func (f *Factory) Create(kind domain.SearchKind) (Strategy, error) {
	if kind == "" {
		kind = domain.KindBasic
	}

	f.mu.RLock()
	ctor, ok := f.table[kind]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSearchKind, kind)
	}
	return ctor(f.src), nil
}

// Kinds lists the registered kinds in name order.
func (f *Factory) Kinds() []domain.SearchKind {
	f.mu.RLock()
	defer f.mu.RUnlock()

	kinds := make([]domain.SearchKind, 0, len(f.table))
	for k := range f.table {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
