package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/sadrozzy/global-hub-real-estate/internal/models"
	"github.com/sadrozzy/global-hub-real-estate/internal/repositories"
)

// AuthService proxies authentication to the external identity backend.
// Tokens are opaque here: the backend alone decides validity.
type AuthService struct {
	BaseURL    string
	HTTPClient *http.Client
	TokenCache *repositories.TokenCache
}

func NewAuthService(baseURL string, httpClient *http.Client, cache *repositories.TokenCache) *AuthService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &AuthService{BaseURL: strings.TrimRight(baseURL, "/"), HTTPClient: httpClient, TokenCache: cache}
}

// BackendError is a rejection the identity backend actually returned,
// decoded once at the boundary and flattened to a displayable message.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return e.Message
}

// decodeBackendError handles the shapes the backend is known to produce:
// {"error": ...}, {"detail": ...}, {"message": ...}, a bare string, or a
// field -> [messages] validation map.
func decodeBackendError(statusCode int, body []byte) *BackendError {
	msg := ""

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err == nil {
		switch v := raw.(type) {
		case string:
			msg = v
		case map[string]interface{}:
			for _, key := range []string{"error", "detail", "message"} {
				if s, ok := v[key].(string); ok && s != "" {
					msg = s
					break
				}
			}
			if msg == "" {
				msg = flattenFieldErrors(v)
			}
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d: %s", statusCode, http.StatusText(statusCode))
	}
	return &BackendError{StatusCode: statusCode, Message: msg}
}

// flattenFieldErrors turns {"email": ["taken"], "password": ["too short"]}
// into "email: taken; password: too short", fields in stable order.
func flattenFieldErrors(fields map[string]interface{}) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		list, ok := fields[k].([]interface{})
		if !ok {
			continue
		}
		var msgs []string
		for _, m := range list {
			if s, ok := m.(string); ok {
				msgs = append(msgs, s)
			}
		}
		if len(msgs) > 0 {
			parts = append(parts, k+": "+strings.Join(msgs, ", "))
		}
	}
	return strings.Join(parts, "; ")
}

func (s *AuthService) postJSON(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	return resp, nil
}

// Login exchanges credentials for a token pair.
func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (models.Tokens, error) {
	resp, err := s.postJSON(ctx, "/auth/jwt/create/", creds)
	if err != nil {
		return models.Tokens{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Tokens{}, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	if resp.StatusCode >= 300 {
		return models.Tokens{}, decodeBackendError(resp.StatusCode, body)
	}

	var tokens models.Tokens
	if err := json.Unmarshal(body, &tokens); err != nil {
		return models.Tokens{}, fmt.Errorf("decode login response: %w", err)
	}
	if tokens.Access == "" || tokens.Refresh == "" {
		return models.Tokens{}, &BackendError{StatusCode: resp.StatusCode, Message: "missing authentication tokens"}
	}
	return tokens, nil
}

// Register creates the account, then chains into Login with the same
// credentials: registration alone does not establish a session.
func (s *AuthService) Register(ctx context.Context, reg models.Registration) (models.Tokens, error) {
	resp, err := s.postJSON(ctx, "/auth/users/", reg)
	if err != nil {
		return models.Tokens{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Tokens{}, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	if resp.StatusCode >= 300 {
		return models.Tokens{}, decodeBackendError(resp.StatusCode, body)
	}

	var created models.User
	if err := json.Unmarshal(body, &created); err != nil {
		return models.Tokens{}, fmt.Errorf("decode register response: %w", err)
	}
	if created.ID == "" || created.Email == "" {
		return models.Tokens{}, &BackendError{StatusCode: resp.StatusCode, Message: "invalid user data received from server"}
	}

	return s.Login(ctx, models.Credentials{Email: reg.Email, Password: reg.Password})
}

// Refresh exchanges the refresh token for a new access token. The cache is
// consulted first so repeated protected requests skip the backend round-trip.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if access, ok := s.TokenCache.Get(ctx, refreshToken); ok {
		return access, nil
	}

	resp, err := s.postJSON(ctx, "/auth/jwt/refresh/", map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	if resp.StatusCode >= 300 {
		s.TokenCache.Delete(ctx, refreshToken)
		return "", decodeBackendError(resp.StatusCode, body)
	}

	var payload struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if payload.Access == "" {
		return "", &BackendError{StatusCode: resp.StatusCode, Message: "missing access token in refresh response"}
	}

	s.TokenCache.Set(ctx, refreshToken, payload.Access)
	return payload.Access, nil
}

// fetchUser calls GET /auth/user/ with a bearer token.
func (s *AuthService) fetchUser(ctx context.Context, accessToken string) (*models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/auth/user/", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, models.ErrUnauthorized
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user response: %w", err)
	}
	return &user, nil
}

// CurrentUser resolves the session behind a token pair. If the access token
// is rejected it falls through to a refresh and retries; newAccess is
// non-empty when the caller should rotate the access cookie. Both nil means
// no session; the caller is responsible for clearing cookies.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken, refreshToken string) (user *models.User, newAccess string, err error) {
	if accessToken != "" {
		if user, err := s.fetchUser(ctx, accessToken); err == nil {
			return user, "", nil
		}
	}

	if refreshToken == "" {
		return nil, "", models.ErrUnauthorized
	}

	access, err := s.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, "", err
	}

	user, err = s.fetchUser(ctx, access)
	if err != nil {
		return nil, "", err
	}
	return user, access, nil
}
