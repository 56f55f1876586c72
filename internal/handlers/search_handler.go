package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/sadrozzy/global-hub-real-estate/internal/models"
	"github.com/sadrozzy/global-hub-real-estate/internal/services"
)

type SearchHandler struct {
	Service *services.SearchService
}

// Search handles POST /api/search.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"Invalid JSON"}`, http.StatusBadRequest)
		return
	}

	req.Filters = services.NormalizeFilters(req.Filters)

	result, err := h.Service.Search(r.Context(), req)
	if err != nil {
		log.Printf("Search failed: %v", err)
		http.Error(w, `{"error":"Internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("Failed to encode search response: %v", err)
	}
}
