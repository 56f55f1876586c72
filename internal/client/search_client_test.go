package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sadrozzy/global-hub-real-estate/internal/models"
)

func pageOf(start, count, total, page, limit int) models.SearchResponse {
	listings := make([]models.Listing, 0, count)
	for i := 0; i < count; i++ {
		n := start + i
		listings = append(listings, models.Listing{
			ID:    "listing-" + strconv.Itoa(n),
			Title: "Modern Apartment " + strconv.Itoa(n),
			Price: 300000 + n*1000,
		})
	}
	return models.SearchResponse{
		Listings: listings,
		Total:    total,
		Page:     page,
		Limit:    limit,
		HasMore:  page*limit < total,
	}
}

func TestSearchBrowserLoadMoreAppends(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.SearchRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(pageOf((req.Page-1)*12+1, 12, 30, req.Page, 12))
	}))
	defer srv.Close()

	b := NewSearchBrowser(srv.URL, srv.Client())

	if !b.Snapshot().IsInitialLoad {
		t.Fatal("expected initial-load state before first fetch")
	}

	if err := b.Search(context.Background()); err != nil {
		t.Fatal(err)
	}
	state := b.Snapshot()
	if state.IsInitialLoad {
		t.Fatal("initial-load flag not cleared")
	}
	if len(state.Listings) != 12 || state.Page != 1 || !state.HasMore {
		t.Fatalf("bad first page: len=%d page=%d hasMore=%v", len(state.Listings), state.Page, state.HasMore)
	}

	if err := b.LoadMore(context.Background()); err != nil {
		t.Fatal(err)
	}
	state = b.Snapshot()
	if len(state.Listings) != 24 || state.Page != 2 {
		t.Fatalf("load more did not append: len=%d page=%d", len(state.Listings), state.Page)
	}
	if state.Listings[12].ID != "listing-13" {
		t.Fatalf("appended page out of order: %s", state.Listings[12].ID)
	}
}

func TestSearchBrowserApplyFiltersReplaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.SearchRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Filters.ListingType == models.ListingTypeRent {
			json.NewEncoder(w).Encode(pageOf(100, 5, 5, 1, 12))
			return
		}
		json.NewEncoder(w).Encode(pageOf(1, 12, 30, req.Page, 12))
	}))
	defer srv.Close()

	b := NewSearchBrowser(srv.URL, srv.Client())

	if err := b.Search(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := b.LoadMore(context.Background()); err != nil {
		t.Fatal(err)
	}

	filters := b.Snapshot().Filters
	filters.ListingType = models.ListingTypeRent
	if err := b.ApplyFilters(context.Background(), filters); err != nil {
		t.Fatal(err)
	}

	state := b.Snapshot()
	if len(state.Listings) != 5 {
		t.Fatalf("filter change must replace, got %d listings", len(state.Listings))
	}
	if state.Page != 1 {
		t.Fatalf("page not reset: %d", state.Page)
	}
	if state.HasMore {
		t.Fatal("hasMore should be false for a 5-item result")
	}
}

func TestSearchBrowserLoadMoreGuards(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		json.NewEncoder(w).Encode(pageOf(1, 5, 5, 1, 12))
	}))
	defer srv.Close()

	b := NewSearchBrowser(srv.URL, srv.Client())
	if err := b.Search(context.Background()); err != nil {
		t.Fatal(err)
	}

	// hasMore is false now; LoadMore must be a no-op.
	if err := b.LoadMore(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 request, got %d", got)
	}
}

func TestSearchBrowserFallbackMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	b := NewSearchBrowser(srv.URL, srv.Client())

	err := b.Search(context.Background())
	if err == nil {
		t.Fatal("transport failure must be reported, not swallowed")
	}

	state := b.Snapshot()
	if state.Mode != ModeFallback {
		t.Fatal("expected fallback mode after failure")
	}
	if len(state.Listings) == 0 {
		t.Fatal("fallback data missing")
	}
	if state.HasMore {
		t.Fatal("fallback pages have no more results")
	}

	// A later successful fetch returns to live mode.
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(pageOf(1, 12, 30, 1, 12))
	}))
	defer ok.Close()
	b.Endpoint = ok.URL

	if err := b.Search(context.Background()); err != nil {
		t.Fatal(err)
	}
	if b.Snapshot().Mode != ModeLive {
		t.Fatal("expected live mode after recovery")
	}
}

func TestFetchPreviewRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(pageOf(1, 6, 6, 1, 6))
	}))
	defer srv.Close()

	b := NewSearchBrowser(srv.URL, srv.Client())
	var delays []time.Duration
	b.Sleep = func(d time.Duration) { delays = append(delays, d) }

	listings, err := b.FetchPreview(context.Background(), 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(listings) != 6 {
		t.Fatalf("expected 6 preview listings got %d", len(listings))
	}
	if len(delays) != 2 || delays[0] != time.Second || delays[1] != 2*time.Second {
		t.Fatalf("unexpected backoff schedule %v", delays)
	}
}

func TestFetchPreviewGivesUpAfterThree(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	b := NewSearchBrowser(srv.URL, srv.Client())
	b.Sleep = func(time.Duration) {}

	if _, err := b.FetchPreview(context.Background(), 6); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestSearchBrowserStaleResponseDropped(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			<-release // first request stalls until after the second completes
			json.NewEncoder(w).Encode(pageOf(500, 12, 100, 1, 12))
			return
		}
		json.NewEncoder(w).Encode(pageOf(1, 12, 30, 1, 12))
	}))
	defer srv.Close()

	b := NewSearchBrowser(srv.URL, srv.Client())

	done := make(chan error, 1)
	go func() { done <- b.Search(context.Background()) }()

	// Wait for the first request to reach the server, then race a second one.
	for atomic.LoadInt32(&calls) == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	if err := b.Search(context.Background()); err != nil {
		t.Fatal(err)
	}
	close(release)
	<-done

	state := b.Snapshot()
	if state.Listings[0].ID != "listing-1" {
		t.Fatalf("stale response overwrote newer result: %s", state.Listings[0].ID)
	}
	if state.Loading {
		t.Fatal("loading flag stuck")
	}
}
