package listing

import "github.com/vbonduro/homelist/internal/domain"

// Seed returns the built-in catalog shown on the landing page.
func Seed() []domain.Property {
	return []domain.Property{
		{
			ID:          "1",
			Title:       "Modern Apartment in Kilimani",
			Price:       domain.Price{Amount: 120_000, Currency: "KSh"},
			Location:    "Kilimani, Nairobi",
			Type:        domain.TypeApartment,
			Bedrooms:    3,
			Bathrooms:   2,
			Area:        domain.Area{Value: 180, Unit: "Sq Meters"},
			Description: "Spacious 3-bedroom apartment in Nairobi's most sought-after neighborhood. Features modern finishes, balcony with city views, and 24/7 security.",
			Image:       "property-1.jpg",
			Coordinates: &domain.Coordinates{Lat: -1.2921, Lon: 36.7856},
		},
		{
			ID:          "2",
			Title:       "Luxury Villa in Dar es Salaam",
			Price:       domain.Price{Amount: 850_000_000, Currency: "TSh"},
			Location:    "Masaki, Dar es Salaam",
			Type:        domain.TypeVilla,
			Bedrooms:    5,
			Bathrooms:   4,
			Area:        domain.Area{Value: 450, Unit: "Sq Meters"},
			Description: "Stunning 5-bedroom villa with ocean views, private pool, and landscaped gardens. Located in the prestigious Masaki neighborhood.",
			Image:       "property-2.jpg",
			Coordinates: &domain.Coordinates{Lat: -6.7500, Lon: 39.2833},
		},
		{
			ID:          "3",
			Title:       "Traditional House in Kampala",
			Price:       domain.Price{Amount: 8_000_000, Currency: "UGX"},
			Location:    "Kololo, Kampala",
			Type:        domain.TypeHouse,
			Bedrooms:    4,
			Bathrooms:   3,
			Area:        domain.Area{Value: 300, Unit: "Sq Meters"},
			Description: "Beautiful 4-bedroom traditional house with modern amenities. Features a spacious compound, servant quarters, and secure parking.",
			Image:       "property-3.jpg",
			Coordinates: &domain.Coordinates{Lat: 0.3326, Lon: 32.5900},
		},
		{
			ID:          "4",
			Title:       "Apartment in Kigali",
			Price:       domain.Price{Amount: 1_200_000, Currency: "RWF"},
			Location:    "Kiyovu, Kigali",
			Type:        domain.TypeApartment,
			Bedrooms:    2,
			Bathrooms:   2,
			Area:        domain.Area{Value: 120, Unit: "Sq Meters"},
			Description: "Modern 2-bedroom apartment in Kigali's most prestigious neighborhood. Features panoramic city views and access to premium amenities.",
			Image:       "property-4.png",
			Coordinates: &domain.Coordinates{Lat: -1.9536, Lon: 30.0605},
		},
	}
}
