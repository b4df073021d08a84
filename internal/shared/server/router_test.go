package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resume-tailor-backend/internal/shared/config"
)

func testConfig() config.Config {
	return config.Config{
		Port:            "8080",
		Env:             "test",
		GeminiModel:     "gemini-1.5-flash",
		EnhanceCooldown: 5 * time.Second,
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewRouter(ctx, testConfig())
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]bool
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode health body: %v", err)
	}
	if !body["ok"] {
		t.Fatalf("expected ok=true, got %v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "enhancement_started_total") {
		t.Fatal("expected enhancement counters in metrics output")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/processResumeWithGemini", nil)
	req.Header.Set("X-Guest-Id", "guest-405")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
}

func TestMissingIdentityRejected(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity headers, got %d", resp.Code)
	}
}

func TestEnhanceCooldownApplied(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{
		"resumeSource":   strings.Repeat("x", 300),
		"jobDescription": "Backend engineer, Go and Postgres.",
	})

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/processResumeWithGemini", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Guest-Id", "cooldown-guest")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	// No API key is configured, so the first attempt reaches the service and
	// fails with 500. It still consumes the cooldown window.
	first := do()
	if first.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without configured client, got %d", first.Code)
	}

	second := do()
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 inside cooldown window, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header on 429")
	}
}

func TestAddr(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ":8080"},
		{"9090", ":9090"},
		{":7000", ":7000"},
	}
	for _, tc := range cases {
		if got := Addr(tc.in); got != tc.want {
			t.Errorf("Addr(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
