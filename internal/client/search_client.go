// Package client provides a stateful consumer of the search API: it owns the
// query and filter state of a results page, merges paginated responses, and
// exposes load-more semantics.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sadrozzy/global-hub-real-estate/internal/models"
)

// Mode says where the currently displayed listings came from. Transport
// failures switch the browser to fallback data but never hide the failure.
type Mode int

const (
	ModeLive Mode = iota
	ModeFallback
)

const defaultPageSize = 12

// State is a point-in-time snapshot of the browser.
type State struct {
	Query         string
	Filters       models.SearchFilters
	Page          int
	Listings      []models.Listing
	Total         int
	Loading       bool
	HasMore       bool
	IsInitialLoad bool
	Mode          Mode
}

// SearchBrowser drives the search endpoint. Safe for concurrent use; a
// monotonic generation counter guarantees a stale response can never
// overwrite the result of a newer request.
type SearchBrowser struct {
	Endpoint   string
	HTTPClient *http.Client

	// Sleep is swappable so backoff tests do not wait wall-clock time.
	Sleep func(time.Duration)

	mu    sync.Mutex
	gen   uint64
	state State
}

func NewSearchBrowser(endpoint string, httpClient *http.Client) *SearchBrowser {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &SearchBrowser{
		Endpoint:   endpoint,
		HTTPClient: httpClient,
		Sleep:      time.Sleep,
		state: State{
			Filters: models.SearchFilters{
				ListingType: models.ListingTypeBuy,
				PriceRange:  models.Range{Min: 0, Max: 10000000},
				Bedrooms:    "any",
				Bathrooms:   "any",
				Area:        models.Range{Min: 0, Max: 10000},
				SortBy:      models.SortRelevance,
			},
			HasMore:       true,
			IsInitialLoad: true,
			Mode:          ModeLive,
		},
	}
}

// Snapshot returns a copy of the current state.
func (b *SearchBrowser) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.state
	s.Listings = append([]models.Listing(nil), b.state.Listings...)
	return s
}

// SetQuery updates the text query without fetching.
func (b *SearchBrowser) SetQuery(query string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Query = query
}

// ApplyFilters replaces the filter set, resets to page one and refetches.
// The previous result list is replaced, not appended to.
func (b *SearchBrowser) ApplyFilters(ctx context.Context, filters models.SearchFilters) error {
	b.mu.Lock()
	b.state.Filters = filters
	b.mu.Unlock()
	return b.fetch(ctx, 1, true)
}

// Search refetches page one with the current query and filters.
func (b *SearchBrowser) Search(ctx context.Context) error {
	return b.fetch(ctx, 1, true)
}

// LoadMore fetches the next page and appends. A no-op while a fetch is in
// flight or when the last page has been reached.
func (b *SearchBrowser) LoadMore(ctx context.Context) error {
	b.mu.Lock()
	if !b.state.HasMore || b.state.Loading {
		b.mu.Unlock()
		return nil
	}
	next := b.state.Page + 1
	b.mu.Unlock()
	return b.fetch(ctx, next, false)
}

func (b *SearchBrowser) fetch(ctx context.Context, page int, reset bool) error {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	b.state.Loading = true
	b.state.IsInitialLoad = false
	query := b.state.Query
	filters := b.state.Filters
	b.mu.Unlock()

	resp, err := b.post(ctx, models.SearchRequest{
		Query:   query,
		Filters: filters,
		Page:    page,
		Limit:   defaultPageSize,
	})

	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen {
		// A newer request superseded this one; its result wins.
		return nil
	}
	b.state.Loading = false

	if err != nil {
		fallback := fallbackListings(24)
		b.state.Listings = fallback
		b.state.Total = len(fallback)
		b.state.HasMore = false
		b.state.Mode = ModeFallback
		return err
	}

	if reset {
		b.state.Listings = resp.Listings
	} else {
		b.state.Listings = append(b.state.Listings, resp.Listings...)
	}
	b.state.Total = resp.Total
	b.state.HasMore = resp.HasMore
	b.state.Page = page
	b.state.Mode = ModeLive
	return nil
}

func (b *SearchBrowser) post(ctx context.Context, req models.SearchRequest) (models.SearchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.SearchResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.Endpoint, bytes.NewReader(body))
	if err != nil {
		return models.SearchResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := b.HTTPClient.Do(httpReq)
	if err != nil {
		return models.SearchResponse{}, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 300 {
		return models.SearchResponse{}, fmt.Errorf("search request failed: HTTP %d", httpResp.StatusCode)
	}

	var resp models.SearchResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return models.SearchResponse{}, err
	}
	return resp, nil
}

// FetchPreview loads a public listing preview, retrying up to three times
// with 1s/2s/4s backoff. Used for unauthenticated landing-page strips.
func (b *SearchBrowser) FetchPreview(ctx context.Context, limit int) ([]models.Listing, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := b.post(ctx, models.SearchRequest{
			Filters: models.SearchFilters{
				PriceRange: models.Range{Max: 10000000},
				Area:       models.Range{Max: 10000},
				Bedrooms:   "any",
				Bathrooms:  "any",
				SortBy:     models.SortNewest,
			},
			Page:  1,
			Limit: limit,
		})
		if err == nil {
			return resp.Listings, nil
		}
		lastErr = err

		if attempt < 3 {
			delay := time.Duration(1<<(attempt-1)) * time.Second
			b.Sleep(delay)
		}
	}
	return nil, lastErr
}

// fallbackListings produces placeholder records shaped like a server page.
func fallbackListings(count int) []models.Listing {
	locations := []string{"New York, NY", "Los Angeles, CA", "Miami, FL", "Chicago, IL", "Houston, TX"}
	titles := []string{"Modern Apartment", "Luxury Villa", "Cozy House", "Penthouse Suite", "Family Home"}
	types := []string{"apartment", "villa", "house", "penthouse", "house"}

	listings := make([]models.Listing, 0, count)
	for i := 1; i <= count; i++ {
		listings = append(listings, models.Listing{
			ID:           fmt.Sprintf("listing-%d", i),
			Title:        fmt.Sprintf("%s %d", titles[i%len(titles)], i),
			Location:     locations[i%len(locations)],
			Price:        300000 + i*50000,
			Bedrooms:     i%4 + 1,
			Bathrooms:    i%3 + 1,
			Area:         800 + i*80,
			Image:        "/images/listings/house.png",
			Certified:    i%3 != 0,
			Description:  "Beautiful property with modern amenities and great location.",
			Amenities:    []string{"pool", "gym", "parking", "garden"}[:i%4+1],
			ListingType:  models.ListingTypeBuy,
			PropertyType: types[i%len(types)],
		})
	}
	return listings
}
