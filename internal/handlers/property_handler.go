package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/sadrozzy/global-hub-real-estate/internal/models"
	"github.com/sadrozzy/global-hub-real-estate/internal/services"
)

type PropertyHandler struct {
	Service *services.PropertyService
}

// Detail handles POST /api/property-detail. Unknown ids resolve to a
// default record rather than 404: the detail page always has content.
func (h *PropertyHandler) Detail(w http.ResponseWriter, r *http.Request) {
	var req models.PropertyDetailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"Invalid JSON"}`, http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		http.Error(w, `{"error":"Property ID is required"}`, http.StatusBadRequest)
		return
	}

	property, err := h.Service.GetProperty(r.Context(), req.ID)
	if err != nil {
		log.Printf("Property detail failed: %v", err)
		http.Error(w, `{"error":"Internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(models.PropertyDetailResponse{
		Success:  true,
		Property: property,
		Locale:   req.Locale,
	}); err != nil {
		log.Printf("Failed to encode property response: %v", err)
	}
}
