package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sadrozzy/global-hub-real-estate/internal/models"
	"github.com/sadrozzy/global-hub-real-estate/internal/services"
)

// CookieConfig describes the two session cookies.
type CookieConfig struct {
	AccessName    string
	RefreshName   string
	AccessMaxAge  int
	RefreshMaxAge int
	Secure        bool
}

type AuthHandler struct {
	Service *services.AuthService
	Cookies CookieConfig
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.Cookies.Secure,
	})
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cookies.Secure,
	})
}

func (h *AuthHandler) setSessionCookies(w http.ResponseWriter, tokens models.Tokens) {
	h.setCookie(w, h.Cookies.AccessName, tokens.Access, h.Cookies.AccessMaxAge)
	h.setCookie(w, h.Cookies.RefreshName, tokens.Refresh, h.Cookies.RefreshMaxAge)
}

func (h *AuthHandler) clearSessionCookies(w http.ResponseWriter) {
	h.clearCookie(w, h.Cookies.AccessName)
	h.clearCookie(w, h.Cookies.RefreshName)
}

func writeAuthError(w http.ResponseWriter, err error) {
	status := http.StatusUnauthorized
	message := err.Error()

	var backendErr *services.BackendError
	switch {
	case errors.As(err, &backendErr):
		message = backendErr.Message
		if backendErr.StatusCode == http.StatusBadRequest {
			status = http.StatusBadRequest
		}
	case errors.Is(err, models.ErrBackendUnavailable):
		status = http.StatusBadGateway
		message = "Network error: identity service unreachable"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, `{"error":"Invalid JSON"}`, http.StatusBadRequest)
		return
	}

	tokens, err := h.Service.Login(r.Context(), creds)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	h.setSessionCookies(w, tokens)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// Register handles POST /api/auth/register. A successful registration
// chains straight into login, so the cookies land in one round-trip.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		http.Error(w, `{"error":"Invalid JSON"}`, http.StatusBadRequest)
		return
	}

	tokens, err := h.Service.Register(r.Context(), reg)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	h.setSessionCookies(w, tokens)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// Logout handles POST /api/auth/logout. Deletes both cookies; always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookies(w)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// Session handles GET /api/auth/session. A rotated access token is re-set
// on the response so the browser keeps a fresh cookie.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	access := cookieValue(r, h.Cookies.AccessName)
	refresh := cookieValue(r, h.Cookies.RefreshName)

	user, newAccess, err := h.Service.CurrentUser(r.Context(), access, refresh)
	if err != nil {
		h.clearSessionCookies(w)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
		return
	}

	if newAccess != "" {
		h.setCookie(w, h.Cookies.AccessName, newAccess, h.Cookies.AccessMaxAge)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]*models.User{"user": user}); err != nil {
		log.Printf("Failed to encode session response: %v", err)
	}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
