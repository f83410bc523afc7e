package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/homelist/internal/domain"
)

func TestAdapt_FlatShape(t *testing.T) {
	price := domain.Price{Amount: 100}
	got := Adapt(ExternalRecord{
		PropertyID:       "x1",
		PropertyName:     "Test",
		PropertyPrice:    &price,
		PropertyLocation: "Y",
		PropertyType:     "apartment",
	})

	assert.Equal(t, domain.Property{
		ID:       "x1",
		Title:    "Test",
		Price:    domain.Price{Amount: 100},
		Location: "Y",
		Type:     domain.TypeApartment,
	}, got)
}

func TestAdapt_RichShape(t *testing.T) {
	price := domain.MustParsePrice("KSh 150,000/Month")
	got := Adapt(ExternalRecord{
		ID:       "property5",
		Title:    "New Property",
		Price:    &price,
		Location: "Westlands, Nairobi",
		Type:     "Apartment",
		Image:    "property-1.jpg",
		Details:  &Details{Bedrooms: 2, Bathrooms: 2, Area: "100"},
	})

	assert.Equal(t, "property5", got.ID)
	assert.Equal(t, "New Property", got.Title)
	assert.Equal(t, "KSh 150,000/Month", got.Price.String())
	assert.Equal(t, domain.TypeApartment, got.Type)
	assert.Equal(t, 2, got.Bedrooms)
	assert.Equal(t, 2, got.Bathrooms)
	assert.Equal(t, domain.Area{Value: 100}, got.Area)
	assert.Equal(t, "property-1.jpg", got.Image)
}

func TestAdapt_FlatFieldsWin(t *testing.T) {
	got := Adapt(ExternalRecord{PropertyID: "flat", ID: "rich", Title: "Rich title"})
	assert.Equal(t, "flat", got.ID)
	assert.Equal(t, "Rich title", got.Title)
}

func TestAdapt_Empty(t *testing.T) {
	assert.Equal(t, domain.Property{}, Adapt(ExternalRecord{}))
}

func TestDecode_FlatShape(t *testing.T) {
	p, err := DecodeProperty([]byte(`{
		"propertyId": "x1",
		"propertyName": "Test",
		"propertyPrice": 100,
		"propertyLocation": "Y",
		"propertyType": "apartment"
	}`))
	require.NoError(t, err)
	assert.Equal(t, domain.Property{
		ID:       "x1",
		Title:    "Test",
		Price:    domain.Price{Amount: 100},
		Location: "Y",
		Type:     domain.TypeApartment,
	}, p)
}

func TestDecode_RichShapeWithStringDetails(t *testing.T) {
	p, err := DecodeProperty([]byte(`{
		"id": 5,
		"title": "New Property",
		"price": "KSh 150,000/Month",
		"location": "Westlands, Nairobi",
		"type": "Apartment",
		"details": {"bedrooms": "2", "bathrooms": 2, "area": "100 Sq Meters"},
		"coordinates": {"lat": -1.2676, "lon": 36.8108},
		"agent": {"name": "Wanjiru Kamau", "title": "Estate Agent"}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "5", p.ID)
	assert.Equal(t, 150000.0, p.Price.Amount)
	assert.Equal(t, "Month", p.Price.Period)
	assert.Equal(t, 2, p.Bedrooms)
	assert.Equal(t, 2, p.Bathrooms)
	assert.Equal(t, domain.Area{Value: 100, Unit: "Sq Meters"}, p.Area)
	require.NotNil(t, p.Coordinates)
	assert.Equal(t, -1.2676, p.Coordinates.Lat)
	require.NotNil(t, p.Agent)
	assert.Equal(t, "Wanjiru Kamau", p.Agent.Name)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{"id":`},
		{name: "not an object", body: `[1, 2]`},
		{name: "missing id", body: `{"title": "No id"}`},
		{name: "empty id", body: `{"id": ""}`},
		{name: "blank id", body: `{"id": "   ", "title": "Ghost"}`},
		{name: "blank flat id", body: `{"propertyId": " \t", "propertyName": "Ghost"}`},
		{name: "area without number", body: `{"id": "a", "details": {"area": "large"}}`},
		{name: "price without digits", body: `{"id": "a", "price": "on request"}`},
		{name: "negative bedrooms", body: `{"id": "a", "details": {"bedrooms": -1}}`},
		{name: "non-numeric bedrooms", body: `{"id": "a", "details": {"bedrooms": "two"}}`},
		{name: "latitude out of range", body: `{"id": "a", "coordinates": {"lat": 95, "lon": 0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.body))
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestDecodeProperty_BlankIDRejected(t *testing.T) {
	p, err := DecodeProperty([]byte(`{"id": "   ", "title": "Ghost"}`))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, p.ID)
}

func TestDecode_AreaNumberAccepted(t *testing.T) {
	rec, err := Decode([]byte(`{"id": "a", "details": {"area": 250}}`))
	require.NoError(t, err)

	p := Adapt(rec)
	assert.Equal(t, domain.Area{Value: 250}, p.Area)
}
