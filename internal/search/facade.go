package search

import (
	"log/slog"

	"github.com/vbonduro/homelist/internal/domain"
)

// Facade runs a search end to end: strategy, filters, then sorting.
type Facade struct {
	factory *Factory
	logger  *slog.Logger
}

func NewFacade(factory *Factory, logger *slog.Logger) *Facade {
	return &Facade{factory: factory, logger: logger}
}

// Use swaps the strategy behind kind for every later search.
func (f *Facade) Use(kind domain.SearchKind, s Strategy) {
	f.factory.Register(kind, func(Source) Strategy { return s })
	f.logger.Info("search strategy replaced", "kind", kind)
}

func (f *Facade) Search(c domain.SearchCriteria) ([]domain.Property, error) {
	strategy, err := f.factory.Create(c.Kind)
	if err != nil {
		return nil, err
	}

	candidates := strategy.Search(c)
	filtered := ApplyFilters(candidates, FiltersFrom(c))
	results := Sort(filtered, c.SortBy)

	f.logger.Debug("search complete",
		"kind", c.Kind,
		"term", c.Term,
		"candidates", len(candidates),
		"results", len(results),
	)
	return results, nil
}
