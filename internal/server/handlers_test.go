package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/muarrikhyazka/hsearch/internal/catalog"
	"github.com/muarrikhyazka/hsearch/internal/config"
	"github.com/muarrikhyazka/hsearch/internal/keyword"
	"github.com/muarrikhyazka/hsearch/internal/models"
	"github.com/muarrikhyazka/hsearch/internal/search"
	"github.com/muarrikhyazka/hsearch/internal/synonym"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	ctx := context.Background()

	entries := []*models.CatalogEntry{
		{
			Code:          "847130",
			DescriptionEN: "Portable computers weighing not more than 10 kg",
			DescriptionID: "Komputer portabel dengan berat tidak lebih dari 10 kg",
			Category:      "electronics",
		},
		{
			Code:          "847141",
			DescriptionEN: "Data processing machines with computer units",
			DescriptionID: "Mesin pengolah data dengan unit komputer",
			Category:      "electronics",
		},
		{
			Code:          "520100",
			DescriptionEN: "Cotton, not carded or combed",
			DescriptionID: "Kapas, tidak digaruk atau disisir",
			Category:      "textiles",
		},
	}
	for _, e := range entries {
		e.KeywordsEN = catalog.DeriveKeywords(e.DescriptionEN, "en")
		e.KeywordsID = catalog.DeriveKeywords(e.DescriptionID, "id")
	}

	store := catalog.NewMemoryStore()
	if err := store.BulkInsert(ctx, entries); err != nil {
		t.Fatalf("failed to fill store: %v", err)
	}

	index, err := keyword.NewMemoryBleveIndex()
	if err != nil {
		t.Fatalf("failed to create keyword index: %v", err)
	}
	t.Cleanup(func() { index.Close() })

	cfg := testConfig()
	engine, err := search.NewEngine(ctx, store, index, nil, nil,
		synonym.NewExpander(synonym.NewTable()), nil, cfg.Search, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	return NewServer(engine, store, cfg, zap.NewNop())
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSearchEndpoint(t *testing.T) {
	router := newTestServer(t).Router()
	rec := postJSON(t, router, "/api/search", map[string]any{"query": "computer"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp models.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Results) == 0 {
		t.Fatal("expected results for computer")
	}
	if top := resp.Results[0].Entry.Code; top != "847130" && top != "847141" {
		t.Errorf("top result = %s, want a computer entry", top)
	}
}

func TestSearchEndpointInvalidQuery(t *testing.T) {
	router := newTestServer(t).Router()
	rec := postJSON(t, router, "/api/search", map[string]any{"query": "   "})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body["error"] == "" {
		t.Error("error body missing error field")
	}
}

func TestSearchEndpointBadBody(t *testing.T) {
	router := newTestServer(t).Router()
	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchEndpointEnhancedDefault(t *testing.T) {
	// Enhanced omitted: the configured default (true) applies, so typo
	// correction runs and rewrites the query.
	router := newTestServer(t).Router()
	rec := postJSON(t, router, "/api/search", map[string]any{"query": "compter"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp models.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CorrectedQuery != "computer" {
		t.Errorf("CorrectedQuery = %q, want computer", resp.CorrectedQuery)
	}

	// Explicitly disabled: the typo stage must not run.
	rec = postJSON(t, router, "/api/search", map[string]any{"query": "compter", "enhanced": false})
	var plain models.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &plain); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if plain.CorrectedQuery != "" {
		t.Errorf("CorrectedQuery = %q with enhanced off, want empty", plain.CorrectedQuery)
	}
}

func TestSuggestionsEndpoint(t *testing.T) {
	router := newTestServer(t).Router()
	rec := postJSON(t, router, "/api/suggestions", map[string]any{"query": "comp"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp models.SuggestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Suggestions == nil {
		t.Error("suggestions must be an array, not null")
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	router := newTestServer(t).Router()
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Categories []models.CategoryInfo `json:"categories"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Categories) != 2 {
		t.Errorf("got %d categories, want 2", len(body.Categories))
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestServer(t).Router()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
}

func TestStatusEndpoint(t *testing.T) {
	router := newTestServer(t).Router()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["catalog_count"].(float64) != 3 {
		t.Errorf("catalog_count = %v, want 3", body["catalog_count"])
	}
	if body["semantic_ready"].(bool) {
		t.Error("semantic_ready = true without an embedder")
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestServer(t).Router()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want client-provided abc-123", got)
	}
}
