package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/homelist/internal/domain"
	"github.com/vbonduro/homelist/internal/service"
)

// profileResponse is a UserProfile without its password.
type profileResponse struct {
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	Phone           string             `json:"phone,omitempty"`
	LoggedIn        bool               `json:"isLoggedIn"`
	Preferences     domain.Preferences `json:"preferences"`
	SavedProperties []string           `json:"savedProperties"`
}

func newProfileResponse(p domain.UserProfile) profileResponse {
	return profileResponse{
		Name:            p.Name,
		Email:           p.Email,
		Phone:           p.Phone,
		LoggedIn:        p.LoggedIn,
		Preferences:     p.Preferences,
		SavedProperties: p.SavedProperties,
	}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Get(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no profile"})
		return
	}
	writeJSON(w, http.StatusOK, newProfileResponse(*p))
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.profiles.SignUp(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newProfileResponse(p))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req service.ProfileUpdate
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.profiles.Update(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProfileResponse(p))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.profiles.Logout(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.profiles.GetPreferences(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleSavePreferences(w http.ResponseWriter, r *http.Request) {
	var req domain.Preferences
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	prefs, err := s.profiles.SavePreferences(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleSaveProperty(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Save(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProfileResponse(p))
}

func (s *Server) handleUnsaveProperty(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Unsave(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProfileResponse(p))
}
