package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

type PropertyType string

const (
	TypeApartment  PropertyType = "apartment"
	TypeVilla      PropertyType = "villa"
	TypeHouse      PropertyType = "house"
	TypeLand       PropertyType = "land"
	TypeCommercial PropertyType = "commercial"
)

// ParsePropertyType case-folds s. Unknown names are kept as custom types.
func ParsePropertyType(s string) PropertyType {
	// Casers are stateful, so one is built per call.
	return PropertyType(cases.Fold().String(strings.TrimSpace(s)))
}

// Known reports whether t is one of the built-in listing types.
func (t PropertyType) Known() bool {
	switch t {
	case TypeApartment, TypeVilla, TypeHouse, TypeLand, TypeCommercial:
		return true
	}
	return false
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Agent struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

type Property struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Price       Price        `json:"price"`
	Location    string       `json:"location"`
	Type        PropertyType `json:"type"`
	Bedrooms    int          `json:"bedrooms"`
	Bathrooms   int          `json:"bathrooms"`
	Area        Area         `json:"area"`
	Description string       `json:"description,omitempty"`
	Image       string       `json:"image,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Agent       *Agent       `json:"agent,omitempty"`
}

type SearchKind string

const (
	KindBasic    SearchKind = "basic"
	KindAdvanced SearchKind = "advanced"
	KindMap      SearchKind = "map"
)

type SortKey string

const (
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortLocation  SortKey = "location"
)

// SearchCriteria is a single search request. Nil bounds and empty strings
// mean the clause is not applied.
type SearchCriteria struct {
	Term     string
	MinPrice *float64
	MaxPrice *float64
	Location string
	Type     PropertyType
	SortBy   SortKey
	Kind     SearchKind
	Geohash  string
}

// Preference toggles stored with a profile.
const (
	PrefNotifications = "notifications"
	PrefNewsletter    = "newsletter"
	PrefPriceUpdates  = "priceUpdates"
	PrefSaveSearch    = "saveSearch"
	PrefAutoFilter    = "autoFilter"
)

type Preferences map[string]bool

// DefaultPreferences returns every known toggle switched off.
func DefaultPreferences() Preferences {
	return Preferences{
		PrefNotifications: false,
		PrefNewsletter:    false,
		PrefPriceUpdates:  false,
		PrefSaveSearch:    false,
		PrefAutoFilter:    false,
	}
}

// Clone returns an independent copy; a nil receiver yields nil.
func (p Preferences) Clone() Preferences {
	if p == nil {
		return nil
	}
	out := make(Preferences, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

type UserProfile struct {
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone,omitempty"`
	Password        string      `json:"password"`
	LoggedIn        bool        `json:"isLoggedIn"`
	Preferences     Preferences `json:"preferences,omitempty"`
	SavedProperties []string    `json:"savedProperties"`
}

// HasSaved reports whether id is in the saved list.
func (u *UserProfile) HasSaved(id string) bool {
	for _, s := range u.SavedProperties {
		if s == id {
			return true
		}
	}
	return false
}
