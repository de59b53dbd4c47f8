package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tpo_system/internal/ratelimit"
	"tpo_system/internal/service"

	"github.com/gin-gonic/gin"
)

func newRateLimitedRouter(generalCfg, authCfg ratelimit.Config, s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil,
		ratelimit.NewFixedWindow(generalCfg),
		ratelimit.NewFixedWindow(authCfg),
	)
	return h.InitRoutes()
}

func doLogin(r http.Handler, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString(`{"username":"alice@example.com","password":"Str0ng!Pass"}`))
	req.Header.Set("Content-Type", "application/json")
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_AuthTierRejectsWithPayload(t *testing.T) {
	auth := &mockAuth{signInErr: service.ErrInvalidCredentials}
	r := newRateLimitedRouter(
		ratelimit.Config{Max: 100, Window: time.Minute},
		ratelimit.Config{Max: 2, Window: time.Minute},
		&service.Service{Authorization: auth},
	)

	for i := 0; i < 2; i++ {
		if w := doLogin(r, "10.0.0.1"); w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status=%d, want 401", i+1, w.Code)
		}
	}

	// 3rd auth request from the same client within the window -> 429
	w := doLogin(r, "10.0.0.1")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status=%d, want 429 (body=%s)", w.Code, w.Body.String())
	}

	var resp struct {
		Error      string `json:"error"`
		Message    string `json:"message"`
		RetryAfter int    `json:"retryAfter"`
		Type       string `json:"type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Type != "AUTH_RATE_LIMIT_EXCEEDED" {
		t.Fatalf("type: got %q", resp.Type)
	}
	if resp.RetryAfter < 1 || resp.RetryAfter > 60 {
		t.Fatalf("retryAfter out of window bounds: %d", resp.RetryAfter)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("missing Retry-After header")
	}

	// a different client is unaffected
	if w := doLogin(r, "10.0.0.2"); w.Code != http.StatusUnauthorized {
		t.Fatalf("other client status=%d, want 401", w.Code)
	}
}

func TestRateLimit_GeneralTierCoversAllRoutes(t *testing.T) {
	r := newRateLimitedRouter(
		ratelimit.Config{Max: 3, Window: time.Minute},
		ratelimit.Config{Max: 100, Window: time.Minute},
		&service.Service{},
	)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Real-IP", "10.1.1.1")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status=%d", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Real-IP", "10.1.1.1")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status=%d, want 429", w.Code)
	}
	var resp struct {
		Type string `json:"type"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Type != "RATE_LIMIT_EXCEEDED" {
		t.Fatalf("type: got %q", resp.Type)
	}
}

// Auth routes consume both tiers: exhausting the general tier blocks
// /api/auth even when the auth tier still has headroom.
func TestRateLimit_AuthRoutesStackedOnGeneralTier(t *testing.T) {
	auth := &mockAuth{signInErr: service.ErrInvalidCredentials}
	r := newRateLimitedRouter(
		ratelimit.Config{Max: 1, Window: time.Minute},
		ratelimit.Config{Max: 100, Window: time.Minute},
		&service.Service{Authorization: auth},
	)

	if w := doLogin(r, "10.2.2.2"); w.Code != http.StatusUnauthorized {
		t.Fatalf("first login status=%d, want 401", w.Code)
	}
	w := doLogin(r, "10.2.2.2")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status=%d, want 429", w.Code)
	}
	var resp struct {
		Type string `json:"type"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Type != "RATE_LIMIT_EXCEEDED" {
		t.Fatalf("general tier should trip first, got type %q", resp.Type)
	}
}
