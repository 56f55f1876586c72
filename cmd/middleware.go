package main

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")
		next.ServeHTTP(w, r)
	})
}

func makeResponseJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		app.infoLog.Printf("%s - %s %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI(), requestID)
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// rateLimit throttles per client IP: 1 req/s sustained, bursts of 5.
// Limiters idle for more than three minutes are swept so the map does not
// grow with every client IP the process has ever seen.
func (app *application) rateLimit(next http.Handler) http.Handler {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			for ip, c := range clients {
				if time.Since(c.lastSeen) > 3*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		mu.Lock()
		c, ok := clients[ip]
		if !ok {
			c = &client{limiter: rate.NewLimiter(rate.Limit(1), 5)}
			clients[ip] = c
		}
		c.lastSeen = time.Now()
		allowed := c.limiter.Allow()
		mu.Unlock()

		if !allowed {
			http.Error(w, `{"error":"Too many requests"}`, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// splitLocale returns the locale prefix and the remainder of the path.
// Ok is false when the path carries no supported locale.
func splitLocale(path string, supported []string) (locale, rest string, ok bool) {
	trimmed := strings.TrimPrefix(path, "/")
	seg, remainder, _ := strings.Cut(trimmed, "/")
	for _, loc := range supported {
		if seg == loc {
			return loc, "/" + remainder, true
		}
	}
	return "", "", false
}

// negotiateLocale picks a supported locale from Accept-Language, falling
// back to the configured default.
func (app *application) negotiateLocale(r *http.Request) string {
	header := strings.ToLower(r.Header.Get("Accept-Language"))
	for _, part := range strings.Split(header, ",") {
		lang, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		lang, _, _ = strings.Cut(lang, "-")
		for _, loc := range app.cfg.Locales.Supported {
			if lang == loc {
				return loc
			}
		}
	}
	return app.cfg.Locales.Default
}

// accessTokenFresh does a local, unverified parse of the access JWT and
// reports whether its expiry is still in the future. The identity backend
// remains the authority; this only decides whether a refresh round-trip can
// be skipped. Opaque or malformed tokens report false.
func accessTokenFresh(token string) bool {
	parsed, _, err := new(jwt.Parser).ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	// 30s of slack so a token does not expire mid-request.
	return time.Now().Add(30 * time.Second).Before(time.Unix(int64(exp), 0))
}

// routeGuard classifies every page request: locale negotiation first, then
// public/auth/protected policy backed by the session cookies.
func (app *application) routeGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale, rest, ok := splitLocale(r.URL.Path, app.cfg.Locales.Supported)
		if !ok {
			target := strings.TrimSuffix("/"+app.negotiateLocale(r)+r.URL.Path, "/")
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusFound)
			return
		}

		access := cookieValue(r, app.cfg.Auth.AccessTokenName)
		refresh := cookieValue(r, app.cfg.Auth.RefreshTokenName)

		switch {
		case rest == "/" || rest == "":
			next.ServeHTTP(w, r)

		case rest == "/login" || rest == "/register":
			if access != "" || refresh != "" {
				http.Redirect(w, r, "/"+locale+"/profile", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)

		case strings.HasPrefix(rest, "/profile"):
			if access == "" && refresh == "" {
				http.Redirect(w, r, "/"+locale+"/login", http.StatusFound)
				return
			}

			if access != "" && accessTokenFresh(access) {
				next.ServeHTTP(w, r)
				return
			}

			if refresh != "" {
				newAccess, err := app.authService.Refresh(r.Context(), refresh)
				if err == nil {
					app.setAccessCookie(w, newAccess)
					next.ServeHTTP(w, r)
					return
				}
				app.infoLog.Printf("Token refresh failed: %v", err)
			}

			app.clearSessionCookies(w)
			http.Redirect(w, r, "/"+locale+"/login", http.StatusFound)

		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (app *application) setAccessCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     app.cfg.Auth.AccessTokenName,
		Value:    value,
		Path:     "/",
		MaxAge:   app.cfg.Auth.AccessTokenMaxAge,
		HttpOnly: true,
		Secure:   app.cfg.Server.Env == "production",
	})
}

func (app *application) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{app.cfg.Auth.AccessTokenName, app.cfg.Auth.RefreshTokenName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
