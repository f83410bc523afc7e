package profile

import (
	"regexp"
	"slices"

	"github.com/vbonduro/homelist/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail reports whether email looks like user@host.tld.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Builder assembles a UserProfile step by step. Every setter returns the
// builder so calls can be chained.
type Builder struct {
	draft domain.UserProfile
}

func NewBuilder() *Builder {
	return &Builder{draft: domain.UserProfile{
		Preferences:     domain.Preferences{},
		SavedProperties: []string{},
	}}
}

// FromProfile starts a builder from a copy of p.
func FromProfile(p domain.UserProfile) *Builder {
	b := NewBuilder()
	b.draft = clone(p)
	return b
}

func (b *Builder) SetName(name string) *Builder {
	b.draft.Name = name
	return b
}

func (b *Builder) SetEmail(email string) *Builder {
	b.draft.Email = email
	return b
}

func (b *Builder) SetPassword(password string) *Builder {
	b.draft.Password = password
	return b
}

func (b *Builder) SetPhone(phone string) *Builder {
	b.draft.Phone = phone
	return b
}

func (b *Builder) SetLoggedIn(loggedIn bool) *Builder {
	b.draft.LoggedIn = loggedIn
	return b
}

// SetPreferences replaces the preference toggles with a copy of prefs.
func (b *Builder) SetPreferences(prefs domain.Preferences) *Builder {
	b.draft.Preferences = prefs.Clone()
	return b
}

// AddSavedProperty appends id unless it is already saved.
func (b *Builder) AddSavedProperty(id string) *Builder {
	if !slices.Contains(b.draft.SavedProperties, id) {
		b.draft.SavedProperties = append(b.draft.SavedProperties, id)
	}
	return b
}

func (b *Builder) RemoveSavedProperty(id string) *Builder {
	b.draft.SavedProperties = slices.DeleteFunc(b.draft.SavedProperties, func(s string) bool {
		return s == id
	})
	return b
}

func (b *Builder) ClearSavedProperties() *Builder {
	b.draft.SavedProperties = []string{}
	return b
}

// Build returns an independent copy of the draft. Later builder calls do
// not affect profiles already built.
func (b *Builder) Build() domain.UserProfile {
	return clone(b.draft)
}

func clone(p domain.UserProfile) domain.UserProfile {
	out := p
	out.Preferences = p.Preferences.Clone()
	if out.Preferences == nil {
		out.Preferences = domain.Preferences{}
	}
	out.SavedProperties = append([]string{}, p.SavedProperties...)
	return out
}
