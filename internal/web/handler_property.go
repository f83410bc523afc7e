package web

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/homelist/internal/domain"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	c, err := parseCriteria(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	results, err := s.search.Search(c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := s.inventory.GetByID(id)
	if !ok {
		s.writeError(w, r, fmt.Errorf("property %q: %w", id, domain.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleCatalog queries the static listing repository. Each supplied
// parameter narrows the result; with none the whole catalog is returned.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results := s.catalog.All()

	if t := q.Get("type"); t != "" {
		results = intersect(results, s.catalog.GetByType(domain.ParsePropertyType(t)))
	}
	if loc := q.Get("location"); loc != "" {
		results = intersect(results, s.catalog.GetByLocation(loc))
	}
	if q.Has("min") || q.Has("max") {
		lo, err := parseBound(q.Get("min"), 0)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		hi, err := parseBound(q.Get("max"), math.MaxInt64)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		results = intersect(results, s.catalog.GetByPriceRange(lo, hi))
	}

	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleCatalogProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := s.catalog.GetByID(id)
	if !ok {
		s.writeError(w, r, fmt.Errorf("property %q: %w", id, domain.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func parseCriteria(r *http.Request) (domain.SearchCriteria, error) {
	q := r.URL.Query()
	c := domain.SearchCriteria{
		Term:     strings.TrimSpace(q.Get("q")),
		Location: strings.TrimSpace(q.Get("location")),
		SortBy:   domain.SortKey(q.Get("sort")),
		Kind:     domain.SearchKind(q.Get("kind")),
		Geohash:  strings.TrimSpace(q.Get("geohash")),
	}
	if t := strings.TrimSpace(q.Get("type")); t != "" {
		c.Type = domain.ParsePropertyType(t)
	}

	var err error
	if c.MinPrice, err = parsePrice(q.Get("min")); err != nil {
		return c, err
	}
	if c.MaxPrice, err = parsePrice(q.Get("max")); err != nil {
		return c, err
	}
	return c, nil
}

func parsePrice(s string) (*float64, error) {
	if s = strings.TrimSpace(s); s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: invalid price bound %q", domain.ErrValidation, s)
	}
	return &v, nil
}

func parseBound(s string, def int64) (int64, error) {
	if s = strings.TrimSpace(s); s == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: invalid price bound %q", domain.ErrValidation, s)
	}
	return v, nil
}

// intersect keeps the entries of a, in order, whose ID also appears in b.
func intersect(a, b []domain.Property) []domain.Property {
	keep := make(map[string]bool, len(b))
	for _, p := range b {
		keep[p.ID] = true
	}
	out := make([]domain.Property, 0, len(a))
	for _, p := range a {
		if keep[p.ID] {
			out = append(out, p)
		}
	}
	return out
}
