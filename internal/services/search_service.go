package services

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/sadrozzy/global-hub-real-estate/internal/models"
	"github.com/sadrozzy/global-hub-real-estate/internal/repositories"
)

const (
	DefaultPriceMax = 10000000
	DefaultAreaMax  = 10000
	DefaultLimit    = 12
)

type SearchService struct {
	ListingStore repositories.ListingStore
}

// Search runs the full pipeline: fetch, filter, sort, paginate.
func (s *SearchService) Search(ctx context.Context, req models.SearchRequest) (models.SearchResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = DefaultLimit
	}

	listings, err := s.ListingStore.List(ctx)
	if err != nil {
		return models.SearchResponse{}, err
	}

	filtered := FilterListings(listings, req.Query, req.Filters)
	filtered = SortListings(filtered, req.Filters.SortBy)

	total := len(filtered)
	start := (req.Page - 1) * req.Limit
	end := start + req.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return models.SearchResponse{
		Listings:   filtered[start:end],
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		HasMore:    req.Page*req.Limit < total,
		TotalPages: (total + req.Limit - 1) / req.Limit,
	}, nil
}

// FilterListings applies the constraint set as a conjunction of independent
// predicates. An empty constraint passes every record.
func FilterListings(listings []models.Listing, query string, f models.SearchFilters) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if matchesFilters(l, query, f) {
			out = append(out, l)
		}
	}
	return out
}

func matchesFilters(l models.Listing, query string, f models.SearchFilters) bool {
	if f.ListingType != "" && l.ListingType != f.ListingType {
		return false
	}

	if query != "" {
		q := strings.ToLower(query)
		if !strings.Contains(strings.ToLower(l.Title), q) &&
			!strings.Contains(strings.ToLower(l.Location), q) &&
			!strings.Contains(strings.ToLower(l.Description), q) {
			return false
		}
	}

	if len(f.PropertyType) > 0 && !matchesPropertyType(l, f.PropertyType) {
		return false
	}

	if l.Price < f.PriceRange.Min || l.Price > f.PriceRange.Max {
		return false
	}

	if !meetsThreshold(l.Bedrooms, f.Bedrooms) {
		return false
	}
	if !meetsThreshold(l.Bathrooms, f.Bathrooms) {
		return false
	}

	if l.Area < f.Area.Min || l.Area > f.Area.Max {
		return false
	}

	if f.Location != "" &&
		!strings.Contains(strings.ToLower(l.Location), strings.ToLower(f.Location)) {
		return false
	}

	for _, want := range f.Amenities {
		if !containsString(l.Amenities, want) {
			return false
		}
	}

	return true
}

// matchesPropertyType checks the listing's dedicated property-type field
// against the requested types.
func matchesPropertyType(l models.Listing, wanted []string) bool {
	for _, w := range wanted {
		if strings.EqualFold(l.PropertyType, w) {
			return true
		}
	}
	return false
}

// meetsThreshold handles bedrooms/bathrooms: "any" (or empty) passes,
// otherwise the listing's count must be at least the requested integer.
// Unparseable values are treated as no restriction.
func meetsThreshold(have int, want string) bool {
	if want == "" || want == "any" {
		return true
	}
	min, err := strconv.Atoi(want)
	if err != nil {
		return true
	}
	return have >= min
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// SortListings returns a reordered copy; the input slice is left untouched.
// Unknown sort options, including "relevance", preserve the input order.
func SortListings(listings []models.Listing, sortBy string) []models.Listing {
	sorted := make([]models.Listing, len(listings))
	copy(sorted, listings)

	switch sortBy {
	case models.SortPriceLow:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	case models.SortPriceHigh:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price > sorted[j].Price })
	case models.SortAreaLarge:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Area > sorted[j].Area })
	case models.SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return listingSeq(sorted[i].ID) > listingSeq(sorted[j].ID)
		})
	}
	return sorted
}

// listingSeq extracts the numeric suffix of ids shaped like "listing-17".
func listingSeq(id string) int {
	idx := strings.LastIndex(id, "-")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(id[idx+1:])
	if err != nil {
		return 0
	}
	return n
}

// NormalizeFilters fills absent or malformed constraint fields with their
// "no restriction" defaults before the engine sees them.
func NormalizeFilters(f models.SearchFilters) models.SearchFilters {
	if f.PriceRange.Max <= 0 {
		f.PriceRange.Max = DefaultPriceMax
	}
	if f.PriceRange.Min < 0 {
		f.PriceRange.Min = 0
	}
	if f.PriceRange.Min > f.PriceRange.Max {
		f.PriceRange.Min, f.PriceRange.Max = f.PriceRange.Max, f.PriceRange.Min
	}
	if f.Area.Max <= 0 {
		f.Area.Max = DefaultAreaMax
	}
	if f.Area.Min < 0 {
		f.Area.Min = 0
	}
	if f.Area.Min > f.Area.Max {
		f.Area.Min, f.Area.Max = f.Area.Max, f.Area.Min
	}
	if f.Bedrooms == "" {
		f.Bedrooms = "any"
	}
	if f.Bathrooms == "" {
		f.Bathrooms = "any"
	}
	if f.SortBy == "" {
		f.SortBy = models.SortRelevance
	}
	return f
}
