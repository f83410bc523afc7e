package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/homelist/internal/adapter"
	"github.com/vbonduro/homelist/internal/domain"
)

func (s *Server) handleListInventory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshot.Properties())
}

// handleAddInventory accepts an external listing record in either the flat
// or the detailed shape.
func (s *Server) handleAddInventory(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("failed to read body: %w", err))
		return
	}

	p, err := adapter.DecodeProperty(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.inventory.AddProperty(p); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			s.writeError(w, r, err)
			return
		}
		// The property is in; only some observers missed the update.
		s.logger.Warn("inventory observers failed", "property_id", p.ID, "error", err)
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleRemoveInventory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.inventory.GetByID(id); !ok {
		s.writeError(w, r, fmt.Errorf("property %q: %w", id, domain.ErrNotFound))
		return
	}

	if err := s.inventory.RemoveProperty(id); err != nil {
		s.logger.Warn("inventory observers failed", "property_id", id, "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}
