package adapter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vbonduro/homelist/internal/domain"
)

// ExternalRecord is a listing as third-party feeds and the legacy page
// describe it. Two shapes are accepted: the flat propertyXxx fields and the
// richer id/title/.../details form. Flat fields win when both are present.
type ExternalRecord struct {
	PropertyID       FlexString    `json:"propertyId,omitempty"`
	PropertyName     string        `json:"propertyName,omitempty"`
	PropertyPrice    *domain.Price `json:"propertyPrice,omitempty"`
	PropertyLocation string        `json:"propertyLocation,omitempty"`
	PropertyType     string        `json:"propertyType,omitempty"`

	ID          FlexString          `json:"id,omitempty"`
	Title       string              `json:"title,omitempty"`
	Price       *domain.Price       `json:"price,omitempty"`
	Location    string              `json:"location,omitempty"`
	Type        string              `json:"type,omitempty"`
	Image       string              `json:"image,omitempty"`
	Description string              `json:"description,omitempty"`
	Details     *Details            `json:"details,omitempty"`
	Coordinates *domain.Coordinates `json:"coordinates,omitempty"`
	Agent       *domain.Agent       `json:"agent,omitempty"`
}

type Details struct {
	Bedrooms  FlexInt    `json:"bedrooms,omitempty"`
	Bathrooms FlexInt    `json:"bathrooms,omitempty"`
	Area      FlexString `json:"area,omitempty"`
}

// Adapt maps rec onto a Property. Missing fields stay at their zero value.
func Adapt(rec ExternalRecord) domain.Property {
	p := domain.Property{
		ID:          firstNonEmpty(string(rec.PropertyID), string(rec.ID)),
		Title:       firstNonEmpty(rec.PropertyName, rec.Title),
		Location:    firstNonEmpty(rec.PropertyLocation, rec.Location),
		Type:        domain.ParsePropertyType(firstNonEmpty(rec.PropertyType, rec.Type)),
		Image:       rec.Image,
		Description: rec.Description,
	}

	switch {
	case rec.PropertyPrice != nil:
		p.Price = *rec.PropertyPrice
	case rec.Price != nil:
		p.Price = *rec.Price
	}

	if d := rec.Details; d != nil {
		p.Bedrooms = int(d.Bedrooms)
		p.Bathrooms = int(d.Bathrooms)
		if area, err := domain.ParseArea(string(d.Area)); err == nil {
			p.Area = area
		}
	}

	if rec.Coordinates != nil {
		c := *rec.Coordinates
		p.Coordinates = &c
	}
	if rec.Agent != nil {
		a := *rec.Agent
		p.Agent = &a
	}
	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// FlexString accepts a JSON string or number.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = FlexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("%w: expected string or number, got %s", domain.ErrValidation, data)
	}
	*s = FlexString(num.String())
	return nil
}

// FlexInt accepts a JSON integer or a string holding one, e.g. "2".
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*n = FlexInt(i)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("%w: expected integer, got %s", domain.ErrValidation, data)
	}
	if strings.TrimSpace(str) == "" {
		*n = 0
		return nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		return fmt.Errorf("%w: expected integer, got %q", domain.ErrValidation, str)
	}
	*n = FlexInt(i)
	return nil
}
