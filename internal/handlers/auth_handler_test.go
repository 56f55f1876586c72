package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sadrozzy/global-hub-real-estate/internal/models"
	"github.com/sadrozzy/global-hub-real-estate/internal/services"
)

func testCookieConfig() CookieConfig {
	return CookieConfig{
		AccessName:    "access_token",
		RefreshName:   "refresh_token",
		AccessMaxAge:  3600,
		RefreshMaxAge: 604800,
	}
}

func newAuthHandler(t *testing.T, backend http.HandlerFunc) *AuthHandler {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	return &AuthHandler{
		Service: services.NewAuthService(srv.URL, srv.Client(), nil),
		Cookies: testCookieConfig(),
	}
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginSetsSessionCookies(t *testing.T) {
	h := newAuthHandler(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Tokens{Access: "acc-token", Refresh: "ref-token"})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.c","password":"pw"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	access := cookieByName(cookies, "access_token")
	refresh := cookieByName(cookies, "refresh_token")
	if access == nil || refresh == nil {
		t.Fatalf("expected both cookies, got %v", cookies)
	}
	if access.Value != "acc-token" || refresh.Value != "ref-token" {
		t.Fatalf("cookie values wrong: %q / %q", access.Value, refresh.Value)
	}
	if !access.HttpOnly || !refresh.HttpOnly {
		t.Fatal("cookies must be HttpOnly")
	}
	if access.MaxAge != 3600 || refresh.MaxAge != 604800 {
		t.Fatalf("max ages wrong: %d / %d", access.MaxAge, refresh.MaxAge)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	h := newAuthHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.c","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("no cookies may be set on failed login")
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] != "No active account found with the given credentials" {
		t.Fatalf("backend detail not surfaced: %q", resp["error"])
	}
}

func TestLogoutClearsCookies(t *testing.T) {
	h := &AuthHandler{Cookies: testCookieConfig()}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("logout must always succeed, got %d", rec.Code)
	}
	for _, name := range []string{"access_token", "refresh_token"} {
		c := cookieByName(rec.Result().Cookies(), name)
		if c == nil || c.MaxAge != -1 {
			t.Fatalf("cookie %s not deleted: %v", name, c)
		}
	}
}

func TestSessionRotatesAccessCookie(t *testing.T) {
	h := newAuthHandler(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/user/":
			if r.Header.Get("Authorization") == "Bearer rotated" {
				json.NewEncoder(w).Encode(models.User{ID: "u-9", Email: "a@b.c"})
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
		case "/auth/jwt/refresh/":
			json.NewEncoder(w).Encode(map[string]string{"access": "rotated"})
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "stale"})
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "ref"})
	rec := httptest.NewRecorder()
	h.Session(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	c := cookieByName(rec.Result().Cookies(), "access_token")
	if c == nil || c.Value != "rotated" {
		t.Fatalf("access cookie not rotated: %v", c)
	}
}

func TestSessionUnauthorized(t *testing.T) {
	h := newAuthHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	rec := httptest.NewRecorder()
	h.Session(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
