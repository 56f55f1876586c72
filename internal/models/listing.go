package models

// Listing types.
const (
	ListingTypeBuy  = "buy"
	ListingTypeRent = "rent"
)

// Sort options accepted by the search API.
const (
	SortRelevance = "relevance"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortNewest    = "newest"
	SortAreaLarge = "area_large"
)

type Listing struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	Price        int      `json:"price"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Area         int      `json:"area"`
	Image        string   `json:"image"`
	Certified    bool     `json:"certified"`
	Description  string   `json:"description"`
	Amenities    []string `json:"amenities"`
	ListingType  string   `json:"listingType"`
	PropertyType string   `json:"propertyType"`
}

type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// SearchFilters carries the structured constraints of a search request.
// Empty fields mean "no restriction", never "match nothing".
type SearchFilters struct {
	ListingType  string   `json:"listingType"`
	PropertyType []string `json:"propertyType"`
	PriceRange   Range    `json:"priceRange"`
	Bedrooms     string   `json:"bedrooms"`
	Bathrooms    string   `json:"bathrooms"`
	Area         Range    `json:"area"`
	Location     string   `json:"location"`
	Amenities    []string `json:"amenities"`
	SortBy       string   `json:"sortBy"`
}

type SearchRequest struct {
	Query   string        `json:"query"`
	Filters SearchFilters `json:"filters"`
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
}

type SearchResponse struct {
	Listings   []Listing `json:"listings"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	HasMore    bool      `json:"hasMore"`
	TotalPages int       `json:"totalPages"`
}
