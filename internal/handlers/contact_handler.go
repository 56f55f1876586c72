package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/sadrozzy/global-hub-real-estate/internal/models"
	"github.com/sadrozzy/global-hub-real-estate/internal/services"
)

type ContactHandler struct {
	Service *services.FeedbackService
}

type contactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		ID        string    `json:"id"`
		CreatedAt time.Time `json:"createdAt"`
	} `json:"data"`
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"Invalid JSON"}`, http.StatusBadRequest)
		return
	}

	fb, err := h.Service.Submit(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMissingFields):
			http.Error(w, `{"error":"All fields are required"}`, http.StatusBadRequest)
		case errors.Is(err, models.ErrInvalidEmail):
			http.Error(w, `{"error":"Invalid email format"}`, http.StatusBadRequest)
		default:
			log.Printf("Failed to persist feedback: %v", err)
			http.Error(w, `{"error":"Internal server error"}`, http.StatusInternalServerError)
		}
		return
	}

	resp := contactResponse{Success: true, Message: "Form submitted successfully"}
	resp.Data.ID = fb.ID
	resp.Data.CreatedAt = fb.CreatedAt

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Failed to encode contact response: %v", err)
	}
}
