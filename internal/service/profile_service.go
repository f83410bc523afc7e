package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/vbonduro/homelist/internal/domain"
	"github.com/vbonduro/homelist/internal/profile"
)

const (
	profileKey     = "userProfile"
	preferencesKey = "userPreferences"
)

// ProfileUpdate carries the editable contact fields. Empty fields are left
// unchanged.
type ProfileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ProfileService manages the single local user profile, its preference
// toggles and its saved properties.
type ProfileService struct {
	mu      sync.Mutex
	blobs   blobRepository
	catalog propertyLookup
	logger  *slog.Logger
}

func NewProfileService(blobs blobRepository, catalog propertyLookup, logger *slog.Logger) *ProfileService {
	return &ProfileService{blobs: blobs, catalog: catalog, logger: logger}
}

// Get returns the stored profile, or nil if nobody has signed up.
func (s *ProfileService) Get(ctx context.Context) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// SignUp replaces any stored profile with a new logged-in one. Name, email
// and password are required and the email must be well formed.
func (s *ProfileService) SignUp(ctx context.Context, name, email, password string) (domain.UserProfile, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return domain.UserProfile{}, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}
	if !profile.ValidateEmail(email) {
		return domain.UserProfile{}, fmt.Errorf("%w: invalid email %q", domain.ErrValidation, email)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.preferences(ctx)
	if err != nil {
		return domain.UserProfile{}, err
	}

	p := profile.NewBuilder().
		SetName(name).
		SetEmail(email).
		SetPassword(password).
		SetPreferences(prefs).
		SetLoggedIn(true).
		ClearSavedProperties().
		Build()

	if err := s.store(ctx, p); err != nil {
		return domain.UserProfile{}, err
	}
	s.logger.Info("user signed up", "email", email)
	return p, nil
}

func (s *ProfileService) Update(ctx context.Context, u ProfileUpdate) (domain.UserProfile, error) {
	email := strings.TrimSpace(u.Email)
	if email != "" && !profile.ValidateEmail(email) {
		return domain.UserProfile{}, fmt.Errorf("%w: invalid email %q", domain.ErrValidation, email)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loggedIn(ctx)
	if err != nil {
		return domain.UserProfile{}, err
	}

	b := profile.FromProfile(*current)
	if name := strings.TrimSpace(u.Name); name != "" {
		b.SetName(name)
	}
	if email != "" {
		b.SetEmail(email)
	}
	if phone := strings.TrimSpace(u.Phone); phone != "" {
		b.SetPhone(phone)
	}
	p := b.Build()

	if err := s.store(ctx, p); err != nil {
		return domain.UserProfile{}, err
	}
	return p, nil
}

// Logout keeps the profile but marks it logged out.
func (s *ProfileService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loggedIn(ctx)
	if err != nil {
		return err
	}
	if err := s.store(ctx, profile.FromProfile(*current).SetLoggedIn(false).Build()); err != nil {
		return err
	}
	s.logger.Info("user logged out", "email", current.Email)
	return nil
}

// GetPreferences returns every known toggle, defaulting to off.
func (s *ProfileService) GetPreferences(ctx context.Context) (domain.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preferences(ctx)
}

// SavePreferences overlays prefs on the stored toggles. Unknown keys are
// rejected. The stored profile, if any, picks up the result.
func (s *ProfileService) SavePreferences(ctx context.Context, prefs domain.Preferences) (domain.Preferences, error) {
	defaults := domain.DefaultPreferences()
	for k := range prefs {
		if _, ok := defaults[k]; !ok {
			return nil, fmt.Errorf("%w: unknown preference %q", domain.ErrValidation, k)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged, err := s.preferences(ctx)
	if err != nil {
		return nil, err
	}
	for k, v := range prefs {
		merged[k] = v
	}

	if err := saveJSON(ctx, s.blobs, preferencesKey, merged); err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}

	current, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if current != nil {
		if err := s.store(ctx, profile.FromProfile(*current).SetPreferences(merged).Build()); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// Save adds id to the saved properties of the logged-in user.
func (s *ProfileService) Save(ctx context.Context, id string) (domain.UserProfile, error) {
	if _, ok := s.catalog.GetByID(id); !ok {
		return domain.UserProfile{}, fmt.Errorf("property %q: %w", id, domain.ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loggedIn(ctx)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if current.HasSaved(id) {
		return domain.UserProfile{}, fmt.Errorf("property %q already saved: %w", id, domain.ErrDuplicateKey)
	}

	p := profile.FromProfile(*current).AddSavedProperty(id).Build()
	if err := s.store(ctx, p); err != nil {
		return domain.UserProfile{}, err
	}
	return p, nil
}

func (s *ProfileService) Unsave(ctx context.Context, id string) (domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loggedIn(ctx)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if !current.HasSaved(id) {
		return domain.UserProfile{}, fmt.Errorf("property %q not saved: %w", id, domain.ErrNotFound)
	}

	p := profile.FromProfile(*current).RemoveSavedProperty(id).Build()
	if err := s.store(ctx, p); err != nil {
		return domain.UserProfile{}, err
	}
	return p, nil
}

func (s *ProfileService) load(ctx context.Context) (*domain.UserProfile, error) {
	var p domain.UserProfile
	found, err := loadJSON(ctx, s.blobs, profileKey, &p)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if !found {
		return nil, nil
	}
	if p.SavedProperties == nil {
		p.SavedProperties = []string{}
	}
	return &p, nil
}

func (s *ProfileService) loggedIn(ctx context.Context) (*domain.UserProfile, error) {
	p, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.LoggedIn {
		return nil, domain.ErrNotLoggedIn
	}
	return p, nil
}

func (s *ProfileService) store(ctx context.Context, p domain.UserProfile) error {
	if err := saveJSON(ctx, s.blobs, profileKey, p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *ProfileService) preferences(ctx context.Context) (domain.Preferences, error) {
	prefs := domain.DefaultPreferences()
	var stored domain.Preferences
	if _, err := loadJSON(ctx, s.blobs, preferencesKey, &stored); err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	for k, v := range stored {
		if _, ok := prefs[k]; ok {
			prefs[k] = v
		}
	}
	return prefs, nil
}
