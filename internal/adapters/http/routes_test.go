package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sessionStore "coachdesk/internal/adapters/storage/session"
)

// newTestMux builds the full handler with the middleware chain applied.
func newTestMux() http.Handler {
	return NewMux(newTestStores(), sessionStore.NewRegistry())
}

// TestMux_Unauthenticated_Dashboard goes through the full chain and is
// rejected by the handler, not the middleware.
func TestMux_Unauthenticated_Dashboard(t *testing.T) {
	h := newTestMux()

	req := httptest.NewRequest("GET", "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

// TestMux_SecurityHeaders are present on every response.
func TestMux_SecurityHeaders(t *testing.T) {
	h := newTestMux()

	req := httptest.NewRequest("GET", "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("Content-Security-Policy"); got == "" {
		t.Error("Content-Security-Policy header missing")
	}
}

// TestMux_JSONPost_CSRFExempt verifies a JSON POST reaches the handler
// instead of being rejected by the CSRF layer.
func TestMux_JSONPost_CSRFExempt(t *testing.T) {
	h := newTestMux()

	body := `{"Email":"nobody@test.com","Password":"wrong"}`
	req := httptest.NewRequest("POST", "/api/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	// 401 from the login handler, not 403 from CSRF.
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

// TestMux_UnknownRoute falls through to the mux's 404.
func TestMux_UnknownRoute(t *testing.T) {
	h := newTestMux()

	req := httptest.NewRequest("GET", "/api/unknown", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want %d", rec.Code, http.StatusNotFound)
	}
}
