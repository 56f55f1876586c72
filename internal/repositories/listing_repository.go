package repositories

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/rand"

	"github.com/sadrozzy/global-hub-real-estate/internal/models"
)

// ListingStore abstracts the listing source so the search service does not
// care whether it is backed by the mock generator or a real database.
type ListingStore interface {
	List(ctx context.Context) ([]models.Listing, error)
}

// MockListingRepository serves a fixed pseudo-dataset generated once per
// process. Repeated List calls return the same records in the same order,
// which pagination across requests depends on.
type MockListingRepository struct {
	Count int
	Seed  uint64

	once     sync.Once
	listings []models.Listing
}

var listingLocations = []string{
	"New York, NY", "Los Angeles, CA", "Miami, FL", "Chicago, IL",
	"Houston, TX", "Seattle, WA", "Boston, MA", "Austin, TX",
}

var listingArchetypes = []struct {
	Title        string
	PropertyType string
}{
	{"Modern Apartment", "apartment"},
	{"Luxury Villa", "villa"},
	{"Cozy House", "house"},
	{"Penthouse Suite", "penthouse"},
	{"Family Home", "house"},
	{"Studio Loft", "studio"},
	{"Townhouse", "townhouse"},
	{"Condo", "condo"},
}

var amenitiesPool = []string{"pool", "gym", "parking", "garden", "balcony", "elevator"}

func (r *MockListingRepository) List(ctx context.Context) ([]models.Listing, error) {
	r.once.Do(func() {
		count := r.Count
		if count <= 0 {
			count = 100
		}
		seed := r.Seed
		if seed == 0 {
			seed = 42
		}
		r.listings = generateListings(count, seed)
	})
	return r.listings, nil
}

func generateListings(count int, seed uint64) []models.Listing {
	rng := rand.New(rand.NewSource(seed))
	listings := make([]models.Listing, 0, count)

	for i := 0; i < count; i++ {
		n := i + 1
		archetype := listingArchetypes[n%len(listingArchetypes)]

		amenities := make([]string, len(amenitiesPool))
		copy(amenities, amenitiesPool)
		rng.Shuffle(len(amenities), func(a, b int) {
			amenities[a], amenities[b] = amenities[b], amenities[a]
		})
		amenities = amenities[:rng.Intn(4)+1]

		listingType := models.ListingTypeBuy
		if rng.Intn(2) == 0 {
			listingType = models.ListingTypeRent
		}

		listings = append(listings, models.Listing{
			ID:           fmt.Sprintf("listing-%d", n),
			Title:        fmt.Sprintf("%s %d", archetype.Title, n),
			Location:     listingLocations[n%len(listingLocations)],
			Price:        rng.Intn(2000000) + 300000,
			Bedrooms:     rng.Intn(4) + 1,
			Bathrooms:    rng.Intn(3) + 1,
			Area:         rng.Intn(2000) + 800,
			Image:        "/images/listings/house.png",
			Certified:    rng.Float64() > 0.3,
			Description:  "Beautiful property with modern amenities and great location.",
			Amenities:    amenities,
			ListingType:  listingType,
			PropertyType: archetype.PropertyType,
		})
	}
	return listings
}
