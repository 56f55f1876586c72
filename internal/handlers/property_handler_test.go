package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sadrozzy/global-hub-real-estate/internal/models"
	"github.com/sadrozzy/global-hub-real-estate/internal/repositories"
	"github.com/sadrozzy/global-hub-real-estate/internal/services"
)

func newPropertyHandler() *PropertyHandler {
	return &PropertyHandler{Service: &services.PropertyService{PropertyRepo: &repositories.PropertyRepository{}}}
}

func TestPropertyDetailKnownID(t *testing.T) {
	h := newPropertyHandler()

	body := `{"id":"123e4567-e89b-12d3-a456-426614174000","locale":"es"}`
	req := httptest.NewRequest(http.MethodPost, "/api/property-detail", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Detail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var resp models.PropertyDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Locale != "es" {
		t.Fatalf("unexpected envelope %+v", resp)
	}
	if resp.Property.Title != "Modern Downtown Loft" {
		t.Fatalf("expected second fixture, got %q", resp.Property.Title)
	}
	if resp.Property.ID != "123e4567-e89b-12d3-a456-426614174000" {
		t.Fatalf("id not echoed: %q", resp.Property.ID)
	}
}

func TestPropertyDetailUnknownIDFallsBack(t *testing.T) {
	h := newPropertyHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/property-detail", strings.NewReader(`{"id":"nope","locale":"en"}`))
	rec := httptest.NewRecorder()

	h.Detail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unknown id must not 404, got %d", rec.Code)
	}
	var resp models.PropertyDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Property.Title != "Sakoora Hill" {
		t.Fatalf("expected default fixture, got %q", resp.Property.Title)
	}
}

func TestPropertyDetailMissingID(t *testing.T) {
	h := newPropertyHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/property-detail", strings.NewReader(`{"locale":"en"}`))
	rec := httptest.NewRecorder()

	h.Detail(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
