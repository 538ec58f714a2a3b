package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"modguard/internal/auditlog"
	"modguard/internal/intent"
	"modguard/internal/moderation"
	"modguard/internal/taxonomy"
)

func newTestRouter(t *testing.T, audit *auditlog.Logger) *gin.Engine {
	t.Helper()
	svc := moderation.New(taxonomy.Default(), nil, intent.New(), nil)
	return New(svc, audit, nil).Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, nil)
	w := doJSON(t, router, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "healthy" {
		t.Errorf("status field = %v", body["status"])
	}
	if body["sentiment"] != "lexicon" {
		t.Errorf("sentiment field = %v, want lexicon", body["sentiment"])
	}
	if body["intent"] != true {
		t.Errorf("intent field = %v, want true", body["intent"])
	}
}

func TestAnalyze(t *testing.T) {
	router := newTestRouter(t, nil)
	w := doJSON(t, router, http.MethodPost, "/analyze", `{"text": "I love this, it is great"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["sentiment"] != "POSITIVE" {
		t.Errorf("sentiment = %v, want POSITIVE", body["sentiment"])
	}
	if body["confidence"] != 0.8 {
		t.Errorf("confidence = %v, want 0.8", body["confidence"])
	}
	if body["source"] != "lexicon" {
		t.Errorf("source = %v, want lexicon", body["source"])
	}
}

func TestAnalyze_BadRequests(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{"missing text field", `{}`, "Missing 'text' field in request"},
		{"malformed json", `{"text":`, "Missing 'text' field in request"},
		{"empty text", `{"text": ""}`, "Text cannot be empty"},
		{"whitespace text", `{"text": "   "}`, "Text cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/analyze", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if body := decodeBody(t, w); body["error"] != tt.wantError {
				t.Errorf("error = %v, want %q", body["error"], tt.wantError)
			}
		})
	}
}

func TestBatchAnalyze(t *testing.T) {
	router := newTestRouter(t, nil)
	w := doJSON(t, router, http.MethodPost, "/batch-analyze",
		`{"texts": ["I love this, it is great", "", "this is terrible"]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	results, ok := body["results"].([]any)
	if !ok || len(results) != 3 {
		t.Fatalf("results = %v, want 3 elements", body["results"])
	}

	first := results[0].(map[string]any)
	if first["sentiment"] != "POSITIVE" {
		t.Errorf("first sentiment = %v, want POSITIVE", first["sentiment"])
	}

	// Empty elements degrade instead of failing the batch.
	second := results[1].(map[string]any)
	if second["sentiment"] != "NEUTRAL" || second["source"] != "empty_text" {
		t.Errorf("empty element = %v, want NEUTRAL/empty_text", second)
	}

	third := results[2].(map[string]any)
	if third["sentiment"] != "NEGATIVE" {
		t.Errorf("third sentiment = %v, want NEGATIVE", third["sentiment"])
	}
}

func TestBatchAnalyze_MissingTexts(t *testing.T) {
	router := newTestRouter(t, nil)
	w := doJSON(t, router, http.MethodPost, "/batch-analyze", `{}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Missing 'texts' field in request" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestModerate(t *testing.T) {
	router := newTestRouter(t, nil)
	w := doJSON(t, router, http.MethodPost, "/moderate",
		`{"text": "This is harassment and contains violence you idiot, I hate everyone"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)

	assessment, ok := body["risk_assessment"].(map[string]any)
	if !ok {
		t.Fatalf("missing risk_assessment: %v", body)
	}
	if assessment["score"] != 0.7 || assessment["level"] != "HIGH" {
		t.Errorf("assessment = %v, want score 0.7 level HIGH", assessment)
	}
	if body["requires_review"] != true {
		t.Error("expected requires_review true")
	}

	tags, ok := body["suggested_tags"].(map[string]any)
	if !ok {
		t.Fatalf("missing suggested_tags: %v", body)
	}
	if _, ok := tags["Violation"]; !ok {
		t.Errorf("expected Violation tags, got %v", tags)
	}

	// Sentiment is included by default.
	if _, ok := body["sentiment"]; !ok {
		t.Error("expected sentiment attached by default")
	}
	if _, ok := body["intent"]; !ok {
		t.Error("expected intent attached")
	}
}

func TestModerate_ExcludeSentiment(t *testing.T) {
	router := newTestRouter(t, nil)
	w := doJSON(t, router, http.MethodPost, "/moderate",
		`{"text": "hello there, what a fine afternoon for a walk", "include_sentiment": false}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["sentiment"] != nil {
		t.Errorf("sentiment must be omitted: %v", body["sentiment"])
	}
}

func TestModerate_BadRequests(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/moderate", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Missing 'text' field in request" {
		t.Errorf("error = %v", body["error"])
	}

	w = doJSON(t, router, http.MethodPost, "/moderate", `{"text": ""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Text cannot be empty" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestBatchModerate(t *testing.T) {
	router := newTestRouter(t, nil)
	w := doJSON(t, router, http.MethodPost, "/batch-moderate",
		`{"texts": ["I love this, it is great", "", "Call me at 555-123-4567 or email me at test@example.com"]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	results, ok := body["results"].([]any)
	if !ok || len(results) != 3 {
		t.Fatalf("results = %v, want 3 elements", body["results"])
	}

	second := results[1].(map[string]any)
	assessment := second["risk_assessment"].(map[string]any)
	if assessment["level"] != "MINIMAL" {
		t.Errorf("empty element level = %v, want MINIMAL", assessment["level"])
	}
	if second["requires_review"] != false {
		t.Error("empty element must not require review")
	}

	third := results[2].(map[string]any)
	tags := third["suggested_tags"].(map[string]any)
	if _, ok := tags["Safety"]; !ok {
		t.Errorf("expected Safety tags on doxxing element, got %v", tags)
	}
}

func TestModerate_WritesAuditLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	audit, err := auditlog.New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer audit.Close()

	router := newTestRouter(t, audit)
	w := doJSON(t, router, http.MethodPost, "/moderate",
		`{"text": "Call me at 555-123-4567 please"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	entries, err := auditlog.Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Source != "http" {
		t.Errorf("source = %s, want http", entry.Source)
	}
	if strings.Contains(entry.Text, "555-123-4567") {
		t.Errorf("audit text not redacted: %q", entry.Text)
	}
	if len(entry.Tags) == 0 || entry.Tags[0] != "Safety/Doxxing" {
		t.Errorf("tags = %v, want [Safety/Doxxing]", entry.Tags)
	}
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t, nil)
	w := doJSON(t, router, http.MethodGet, "/nope", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
