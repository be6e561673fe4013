package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TheGrowthIntern/boxing-analyst/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		APIBasePath: "/api",
		Boxing: config.BoxingConfig{
			BaseURL: "https://boxing.invalid/v1",
			Timeout: time.Second,
		},
		Groq: config.GroqConfig{
			BaseURL:        "https://groq.invalid/openai/v1",
			Model:          "groq/compound",
			FastModel:      "groq/compound-mini",
			SearchTimeout:  time.Second,
			ProfileTimeout: time.Second,
			AnswerTimeout:  time.Second,
		},
		ProfileTTL:   5 * time.Minute,
		AnswerTTL:    3 * time.Minute,
		RetryBackoff: time.Millisecond,
		RateRPS:      1000,
		RateBurst:    1000,
		OTEL:         config.OTELConfig{ServiceName: "boxing-analyst-test"},
	}
}

func newTestEngine(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, cfg)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestEngine(t, testConfig())
	w := get(r, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("body = %v", body)
	}
}

func TestRequestIDAndSecurityHeaders(t *testing.T) {
	r := newTestEngine(t, testConfig())
	w := get(r, "/health")

	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID header")
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options = %q", got)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	r := newTestEngine(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "client-supplied-id" {
		t.Fatalf("X-Request-ID = %q; want the client-supplied id echoed back", got)
	}
}

func TestNoRouteEnvelope(t *testing.T) {
	r := newTestEngine(t, testConfig())
	w := get(r, "/nope")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var e struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode: %v (%s)", err, w.Body.String())
	}
	if e.Code != "not_found" || e.Message != "route not found" {
		t.Fatalf("envelope = %+v", e)
	}
}

func TestNoMethodEnvelope(t *testing.T) {
	r := newTestEngine(t, testConfig())
	req := httptest.NewRequest(http.MethodDelete, "/api/search", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "method_not_allowed") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestSearchMissingQueryThroughFullStack(t *testing.T) {
	r := newTestEngine(t, testConfig())
	w := get(r, "/api/search")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Missing search query") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	r := newTestEngine(t, testConfig())
	w := get(r, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRateLimiterKicksIn(t *testing.T) {
	cfg := testConfig()
	cfg.RateRPS = 0.1
	cfg.RateBurst = 1
	r := newTestEngine(t, cfg)

	if w := get(r, "/health"); w.Code != http.StatusOK {
		t.Fatalf("first request: %d", w.Code)
	}
	w := get(r, "/health")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request = %d; want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("missing Retry-After header")
	}
	if !strings.Contains(w.Body.String(), "too_many_requests") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestBasePathMounting(t *testing.T) {
	cfg := testConfig()
	cfg.APIBasePath = "/"
	r := newTestEngine(t, cfg)

	w := get(r, "/search")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; root-mounted /search should reject a missing query", w.Code)
	}
}
