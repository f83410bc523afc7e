package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/homelist/internal/domain"
)

type cartResponse struct {
	Items []domain.Property `json:"items"`
	Count int               `json:"count"`
}

type cartRequest struct {
	PropertyID string `json:"propertyId"`
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	s.writeCart(w, r, http.StatusOK)
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	id := strings.TrimSpace(req.PropertyID)
	if id == "" {
		s.writeError(w, r, fmt.Errorf("%w: propertyId is required", domain.ErrValidation))
		return
	}

	if err := s.cart.Add(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeCart(w, r, http.StatusCreated)
}

func (s *Server) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	if err := s.cart.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetCart(w http.ResponseWriter, r *http.Request) {
	if err := s.cart.Reset(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeCart(w http.ResponseWriter, r *http.Request, status int) {
	items, err := s.cart.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, cartResponse{Items: items, Count: len(items)})
}
