package repositories

import (
	"context"
	"time"

	"github.com/sadrozzy/global-hub-real-estate/internal/models"
)

// PropertyRepository serves detail-page records from a small fixture set.
// Unknown ids fall back to the first record instead of a not-found error:
// detail pages always render something.
type PropertyRepository struct{}

type propertyFixture struct {
	Title       string
	Type        string
	Description string
	Location    models.PropertyLocation
	Price       int
	Features    models.PropertyFeatures
}

var propertyFixtures = []propertyFixture{
	{
		Title: "Sakoora Hill",
		Type:  "House",
		Description: "Our Sakoora Hill beautiful three-bedroom home is located in a quiet " +
			"residential community. This home features an open floor plan with a spacious " +
			"living room, dining room, and kitchen. The master bedroom includes a walk-in " +
			"closet and en-suite bathroom. The backyard offers privacy and is perfect for " +
			"entertaining. With its prime location, this home offers an excellent " +
			"opportunity for comfortable living.",
		Location: models.PropertyLocation{
			Address: "123 Sakoora Hill Drive", City: "San Francisco", State: "CA",
			Country: "USA", ZipCode: "94102", Latitude: 37.7749, Longitude: -122.4194,
		},
		Price: 315250,
		Features: models.PropertyFeatures{
			Bedrooms: 3, Bathrooms: 2, Area: 1450, AreaUnit: "sq ft",
			YearBuilt: 2018, ParkingSpaces: 2, Floors: 2,
		},
	},
	{
		Title: "Modern Downtown Loft",
		Type:  "Apartment",
		Description: "Stunning modern loft in the heart of downtown with floor-to-ceiling " +
			"windows, exposed brick walls, and premium finishes throughout. This urban " +
			"oasis features an open-concept design perfect for modern living and " +
			"entertaining.",
		Location: models.PropertyLocation{
			Address: "456 Urban Street", City: "New York", State: "NY",
			Country: "USA", ZipCode: "10001", Latitude: 40.7128, Longitude: -74.0060,
		},
		Price: 750000,
		Features: models.PropertyFeatures{
			Bedrooms: 2, Bathrooms: 2, Area: 1200, AreaUnit: "sq ft",
			YearBuilt: 2020, ParkingSpaces: 1, Floors: 1,
		},
	},
	{
		Title: "Luxury Beachfront Villa",
		Type:  "Villa",
		Description: "Exceptional beachfront villa offering panoramic ocean views and direct " +
			"beach access. This architectural masterpiece features premium materials, smart " +
			"home technology, and resort-style amenities including infinity pool and " +
			"private dock.",
		Location: models.PropertyLocation{
			Address: "789 Ocean Drive", City: "Miami", State: "FL",
			Country: "USA", ZipCode: "33139", Latitude: 25.7617, Longitude: -80.1918,
		},
		Price: 2500000,
		Features: models.PropertyFeatures{
			Bedrooms: 5, Bathrooms: 4, Area: 3500, AreaUnit: "sq ft",
			YearBuilt: 2019, ParkingSpaces: 3, Floors: 2,
		},
	},
}

var propertyFixtureIndex = map[string]int{
	"688c6e5f-7098-8333-873b-0f0703f3bf82": 0,
	"123e4567-e89b-12d3-a456-426614174000": 1,
	"987fcdeb-51a2-43d1-9c4f-123456789abc": 2,
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (models.PropertyDetail, error) {
	idx, ok := propertyFixtureIndex[id]
	if !ok {
		idx = 0
	}
	f := propertyFixtures[idx]

	now := time.Now()
	return models.PropertyDetail{
		ID:          id,
		Title:       f.Title,
		Type:        f.Type,
		Description: f.Description,
		Location:    f.Location,
		Price:       f.Price,
		Currency:    "USD",
		Status:      "for-sale",
		Features:    f.Features,
		Images: []models.PropertyImage{
			{ID: "1", URL: "/images/properties/thumbnail-1.jpg", Alt: f.Title + " - Main View", IsPrimary: true},
			{ID: "2", URL: "/images/properties/thumbnail-2.png", Alt: f.Title + " - Living Room"},
			{ID: "3", URL: "/images/properties/thumbnail-3.png", Alt: f.Title + " - Kitchen"},
			{ID: "4", URL: "/images/properties/thumbnail-4.png", Alt: f.Title + " - Bedroom"},
		},
		Amenities: []models.PropertyAmenity{
			{ID: "1", Name: "Swimming Pool", Icon: "pool"},
			{ID: "2", Name: "Gym", Icon: "gym"},
			{ID: "3", Name: "Parking", Icon: "parking"},
			{ID: "4", Name: "Garden", Icon: "garden"},
			{ID: "5", Name: "Balcony", Icon: "balcony"},
		},
		Agent: models.PropertyAgent{
			ID:     "agent-1",
			Name:   "Diana Bermudez",
			Avatar: "/images/agents/agent-avatar.png",
			Phone:  "+1 (555) 123-4567",
			Email:  "diana.bermudez@myglobalhub.com",
			Title:  "Senior Real Estate Agent",
		},
		CreatedAt:      now.AddDate(0, 0, -14),
		UpdatedAt:      now,
		IsCertified:    true,
		VirtualTourURL: "https://example.com/virtual-tour",
		FloorPlanURL:   "https://example.com/floor-plan",
	}, nil
}
