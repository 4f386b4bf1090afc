package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"peacemaker/internal/interpret"
	"peacemaker/internal/model"
	"peacemaker/internal/retry"
	"peacemaker/internal/scale"
	"peacemaker/internal/service"
	"peacemaker/internal/transport/ws"
)

type httpStatusError int

func (e httpStatusError) Error() string   { return "remote status " + http.StatusText(int(e)) }
func (e httpStatusError) StatusCode() int { return int(e) }

type stubGenerator struct {
	mu    sync.Mutex
	calls int
	raw   string
	err   error
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.raw, g.err
}

type stubChecker struct {
	err   error
	calls int
}

func (c *stubChecker) HealthCheck(ctx context.Context) error {
	c.calls++
	return c.err
}

func newTestRouter(t *testing.T, gen service.Generator) http.Handler {
	t.Helper()
	return newTestRouterWithReadiness(t, gen, nil)
}

func newTestRouterWithReadiness(t *testing.T, gen service.Generator, readiness HealthChecker) http.Handler {
	t.Helper()
	policy := retry.DefaultPolicy()
	policy.Jitter = func(time.Duration) time.Duration { return 0 }
	policy.Sleep = func(context.Context, time.Duration) error { return nil }

	hub := ws.NewHub()
	t.Cleanup(hub.Close)

	analyzer := service.NewAnalyzerService(scale.DefaultRegistry(), gen, policy, interpret.Interpreter{Mode: interpret.Lenient})
	analyzer.SetBroadcaster(hub)

	return NewRouter(&Container{
		AnalyzerService: analyzer,
		AuthService:     service.NewAuthService("admin", "pw", "test-secret"),
		WSHub:           hub,
		Readiness:       readiness,
	})
}

func doRequest(h http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["error"]
}

func TestAnalyzeEndpoint(t *testing.T) {
	gen := &stubGenerator{raw: "```json\n{\"score\":7,\"explanation\":\"x\",\"category\":\"mild\",\"improvementTips\":[\"be nicer\"]}\n```"}
	h := newTestRouter(t, gen)

	rec := doRequest(h, http.MethodPost, "/v1/analyze", `{"text":"you are wrong","scale":"toxicity","topic":"Tax Policy"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp model.AnalyzeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Analysis.Result.Score != 7 || resp.Analysis.Result.Category != "mild" {
		t.Fatalf("unexpected result %+v", resp.Analysis.Result)
	}
	if resp.Display.Category != "toxic" || resp.Display.Badge != "destructive" || resp.Display.Percent != 70 {
		t.Fatalf("unexpected display %+v", resp.Display)
	}
}

func TestAnalyzeEndpointErrors(t *testing.T) {
	tests := []struct {
		name       string
		gen        *stubGenerator
		body       string
		wantStatus int
		wantError  string
		wantCalls  int
	}{
		{
			name:       "empty text",
			gen:        &stubGenerator{raw: "{}"},
			body:       `{"text":"   ","scale":"dignity"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Please enter some text to analyze",
		},
		{
			name:       "missing custom topic",
			gen:        &stubGenerator{raw: "{}"},
			body:       `{"text":"hi","scale":"toxicity","topic":"Other"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Please enter a custom topic",
		},
		{
			name:       "bad json",
			gen:        &stubGenerator{raw: "{}"},
			body:       `{"text":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "quota exhausted",
			gen:        &stubGenerator{err: httpStatusError(http.StatusTooManyRequests)},
			body:       `{"text":"hi","scale":"dignity"}`,
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "Failed to analyze text. Please try again.",
			wantCalls:  4,
		},
		{
			name:       "remote rejected",
			gen:        &stubGenerator{err: httpStatusError(http.StatusBadRequest)},
			body:       `{"text":"hi","scale":"dignity"}`,
			wantStatus: http.StatusBadGateway,
			wantError:  "Failed to analyze text. Please try again.",
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(t, tt.gen)
			rec := doRequest(h, http.MethodPost, "/v1/analyze", tt.body, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := decodeError(t, rec); got != tt.wantError {
				t.Fatalf("expected error %q, got %q", tt.wantError, got)
			}
			if tt.gen.calls != tt.wantCalls {
				t.Fatalf("expected %d remote calls, got %d", tt.wantCalls, tt.gen.calls)
			}
		})
	}
}

func TestScaleAndTopicEndpoints(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := doRequest(h, http.MethodGet, "/v1/scales", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list struct {
		Default string              `json:"default"`
		Scales  []*scale.Descriptor `json:"scales"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if list.Default != "toxicity" || len(list.Scales) != 2 {
		t.Fatalf("unexpected scale list: default=%s n=%d", list.Default, len(list.Scales))
	}

	rec = doRequest(h, http.MethodGet, "/v1/scales/dignity", "", nil)
	var desc scale.Descriptor
	if err := json.NewDecoder(rec.Body).Decode(&desc); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if desc.Max != 8 || len(desc.Levels) != 8 {
		t.Fatalf("expected 8-level dignity scale, got max=%d levels=%d", desc.Max, len(desc.Levels))
	}

	rec = doRequest(h, http.MethodGet, "/v1/scales/unknown", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = doRequest(h, http.MethodGet, "/v1/topics", "", nil)
	var topics struct {
		Topics []string `json:"topics"`
		Other  string   `json:"other"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&topics); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(topics.Topics) != 21 || topics.Topics[20] != "Other" || topics.Other != "Other" {
		t.Fatalf("unexpected topics %v", topics)
	}
}

func TestHistoryRequiresAdmin(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := doRequest(h, http.MethodGet, "/v1/analyses", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = doRequest(h, http.MethodPost, "/v1/auth/login", `{"username":"admin","password":"nope"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", rec.Code)
	}

	rec = doRequest(h, http.MethodPost, "/v1/auth/login", `{"username":"admin","password":"pw"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var login model.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&login); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	auth := map[string]string{"Authorization": "Bearer " + login.Token}
	rec = doRequest(h, http.MethodGet, "/v1/analyses", "", auth)
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501 without history storage, got %d", rec.Code)
	}
	rec = doRequest(h, http.MethodGet, "/v1/analyses?limit=abc", "", auth)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
	}
}

func TestCORSPreflightAndMeta(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := doRequest(h, http.MethodOptions, "/v1/analyze", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected wildcard origin, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}

	rec = doRequest(h, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(h, http.MethodGet, "/swagger/doc.json", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Peacemaker API") {
		t.Fatalf("unexpected swagger response %d", rec.Code)
	}
}

func TestReadyEndpoint(t *testing.T) {
	rec := doRequest(newTestRouter(t, nil), http.MethodGet, "/ready", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"mock"`) {
		t.Fatalf("expected 200 mock readiness, got %d %s", rec.Code, rec.Body.String())
	}

	healthy := &stubChecker{}
	rec = doRequest(newTestRouterWithReadiness(t, &stubGenerator{}, healthy), http.MethodGet, "/ready", "", nil)
	if rec.Code != http.StatusOK || healthy.calls != 1 {
		t.Fatalf("expected 200 after one check, got %d with %d checks", rec.Code, healthy.calls)
	}

	failing := &stubChecker{err: errors.New("gemini api error 403: API key not valid")}
	rec = doRequest(newTestRouterWithReadiness(t, &stubGenerator{}, failing), http.MethodGet, "/ready", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "API key") {
		t.Fatalf("expected remote error details to stay out of the response, got %s", rec.Body.String())
	}
}
