package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"textdigest/internal/domain"
	"textdigest/internal/humanizer"
	"textdigest/internal/service"
	"textdigest/internal/stopwords"
	"textdigest/internal/summarizer"
)

const lecture = "Python es versátil. Se usa en ciencia de datos. Es legible. Facebook y Google lo usan. Tiene librerías ricas."

func newTestServer(t *testing.T, svc domain.DigestService) *httptest.Server {
	t.Helper()
	if svc == nil {
		svc = service.NewDigestService(
			summarizer.NewFrequencySummarizer(stopwords.Spanish()),
			summarizer.NewKeywordExtractor(stopwords.SpanishKeywords()),
			humanizer.New(),
			humanizer.NewReadabilityImprover(nil),
			3,
			nil,
		)
	}
	mux := http.NewServeMux()
	RegisterRoutes(mux, NewHandler(svc, 40, nil))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHandleSummarize(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantSummary string
	}{
		{
			name:        "explicit percentage",
			contentType: "application/json",
			body:        `{"text": "` + lecture + `", "percentage": 1}`,
			wantStatus:  http.StatusOK,
			wantSummary: "Se usa en ciencia de datos.",
		},
		{
			name:        "default percentage",
			contentType: "application/json; charset=utf-8",
			body:        `{"text": "` + lecture + `"}`,
			wantStatus:  http.StatusOK,
			wantSummary: "Se usa en ciencia de datos. Facebook y Google lo usan.",
		},
		{name: "percentage zero", contentType: "application/json", body: `{"text": "x", "percentage": 0}`, wantStatus: http.StatusBadRequest},
		{name: "percentage too big", contentType: "application/json", body: `{"text": "x", "percentage": 150}`, wantStatus: http.StatusBadRequest},
		{name: "percentage not a number", contentType: "application/json", body: `{"text": "x", "percentage": "alto"}`, wantStatus: http.StatusBadRequest},
		{name: "broken json", contentType: "application/json", body: `{"text": `, wantStatus: http.StatusBadRequest},
		{name: "unknown field", contentType: "application/json", body: `{"texto": "x"}`, wantStatus: http.StatusBadRequest},
		{name: "wrong content type", contentType: "text/plain", body: lecture, wantStatus: http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, "/summarize", tt.contentType, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				var body map[string]string
				if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body["error"] == "" {
					t.Errorf("expected JSON error body, got %v (%v)", body, err)
				}
				return
			}
			var got domain.SummaryResult
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatal(err)
			}
			if got.Summary != tt.wantSummary {
				t.Errorf("summary = %q, want %q", got.Summary, tt.wantSummary)
			}
			if got.OriginalLength != 109 || len(got.Keywords) != 3 {
				t.Errorf("unexpected result: %+v", got)
			}
		})
	}
}

func TestHandleHumanize(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := post(t, srv, "/humanize", "application/json", `{"text": "eh bueno um vamos a hablar de python python es genial"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var raw map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatal(err)
	}
	if raw["humanized_text"] != "Eh bueno vamos a hablar de Python es genial." {
		t.Errorf("humanized_text = %q", raw["humanized_text"])
	}
}

func TestHandleOutline(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := post(t, srv, "/outline", "application/json", `{"text": ""}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if string(got["outline"]) != "[]" {
		t.Errorf("outline = %s, want []", got["outline"])
	}
}

func TestMethodAndHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/summarize")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /summarize status = %d, want 405", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /health status = %d", resp.StatusCode)
	}
}

type failingService struct{ domain.DigestService }

func (failingService) Humanize(context.Context, string) (domain.HumanizeResult, error) {
	return domain.HumanizeResult{}, errors.New("disk on fire")
}

func TestInternalErrorsAreHidden(t *testing.T) {
	srv := newTestServer(t, failingService{})
	resp := post(t, srv, "/humanize", "application/json", `{"text": "hola"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(body["error"], "disk") {
		t.Errorf("internal error leaked: %q", body["error"])
	}
}
