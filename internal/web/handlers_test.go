package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rbessler/inkwell/internal/cache"
	"github.com/rbessler/inkwell/internal/config"
	"github.com/rbessler/inkwell/internal/db"
	"github.com/rbessler/inkwell/internal/entry"
	"github.com/rbessler/inkwell/internal/ops"
)

func setupTest(t *testing.T) (http.Handler, *ops.Service) {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	c, err := cache.New(cache.DefaultConfig())
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := ops.New(database, c, config.DefaultConfig(), log)
	srv := NewServer(svc, log, "127.0.0.1", 0)
	return srv.Handler, svc
}

// seedEntry creates an entry directly through the orchestrator.
func seedEntry(t *testing.T, svc *ops.Service, title, category string) *entry.Entry {
	t.Helper()
	e, err := svc.Create(context.Background(), ops.CreateInput{
		Title:    title,
		Category: category,
		Content:  "<p>seeded content</p>",
	})
	if err != nil {
		t.Fatalf("seed entry %q: %v", title, err)
	}
	return e
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEntry(t *testing.T, rec *httptest.ResponseRecorder) entry.Entry {
	t.Helper()
	var e entry.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode entry: %v (body: %s)", err, rec.Body.String())
	}
	return e
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (code, message string) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (body: %s)", err, rec.Body.String())
	}
	return body.Error.Code, body.Error.Message
}

// --- GET /entries ---

func TestHandleList(t *testing.T) {
	h, svc := setupTest(t)
	seedEntry(t, svc, "Alpha", "Poems")
	seedEntry(t, svc, "Beta", "Notes")

	rec := doRequest(t, h, "GET", "/entries", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var entries []entry.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("list length = %d, want 2", len(entries))
	}

	rec = doRequest(t, h, "GET", "/entries?category=Poems", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Alpha" {
		t.Errorf("filtered list = %v", entries)
	}
}

func TestHandleListBadCategory(t *testing.T) {
	h, _ := setupTest(t)

	rec := doRequest(t, h, "GET", "/entries?category=Recipes", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code, _ := decodeError(t, rec); code != "VALIDATION_ERROR" {
		t.Errorf("error code = %q", code)
	}
}

// --- GET /entries/{id} ---

func TestHandleGet(t *testing.T) {
	h, svc := setupTest(t)
	e := seedEntry(t, svc, "Gamma", "Stories")

	rec := doRequest(t, h, "GET", "/entries/"+e.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := decodeEntry(t, rec)
	if got.ID != e.ID || got.Title != "Gamma" {
		t.Errorf("entry = %+v", got)
	}
}

func TestHandleGetErrors(t *testing.T) {
	h, _ := setupTest(t)

	rec := doRequest(t, h, "GET", "/entries/not-a-ulid", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed id status = %d, want 400", rec.Code)
	}

	rec = doRequest(t, h, "GET", "/entries/01ARZ3NDEKTSV4RRFFQ69G5FAV", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing id status = %d, want 404", rec.Code)
	}
	if code, _ := decodeError(t, rec); code != "NOT_FOUND" {
		t.Errorf("error code = %q", code)
	}
}

func TestHandleGetCategoryMismatch(t *testing.T) {
	h, svc := setupTest(t)
	e := seedEntry(t, svc, "Delta", "Poems")

	rec := doRequest(t, h, "GET", "/entries/"+e.ID+"?category=Media", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("mismatched category status = %d, want 404", rec.Code)
	}
}

// --- POST /entries ---

func TestHandleCreate(t *testing.T) {
	h, _ := setupTest(t)

	rec := doRequest(t, h, "POST", "/entries", `{
		"title": "New Poem",
		"category": "Poems",
		"content": "<p>fresh ink</p>",
		"tags": ["draft"]
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}
	e := decodeEntry(t, rec)
	if e.ID == "" || e.Title != "New Poem" || e.Status != entry.StatusDraft {
		t.Errorf("created entry = %+v", e)
	}
}

func TestHandleCreateInvalid(t *testing.T) {
	h, _ := setupTest(t)

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"title": `},
		{"unknown field", `{"title": "X", "category": "Poems", "views": 5}`},
		{"missing title", `{"category": "Poems"}`},
		{"unknown category", `{"title": "X", "category": "Recipes"}`},
	}
	for _, tc := range cases {
		rec := doRequest(t, h, "POST", "/entries", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

// --- PUT /entries/{id} ---

func TestHandleUpdate(t *testing.T) {
	h, svc := setupTest(t)
	e := seedEntry(t, svc, "Before", "Notes")

	rec := doRequest(t, h, "PUT", "/entries/"+e.ID, `{"title": "After"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	got := decodeEntry(t, rec)
	if got.Title != "After" || got.Category != entry.CategoryNotes {
		t.Errorf("updated entry = %+v", got)
	}
}

func TestHandleUpdateErrors(t *testing.T) {
	h, svc := setupTest(t)
	e := seedEntry(t, svc, "Fixed", "Notes")

	rec := doRequest(t, h, "PUT", "/entries/"+e.ID, `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty body status = %d, want 400", rec.Code)
	}

	rec = doRequest(t, h, "PUT", "/entries/01ARZ3NDEKTSV4RRFFQ69G5FAV", `{"title": "Ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing id status = %d, want 404", rec.Code)
	}
}

// --- DELETE /entries/{id} ---

func TestHandleDelete(t *testing.T) {
	h, svc := setupTest(t)
	e := seedEntry(t, svc, "Doomed", "Notes")

	rec := doRequest(t, h, "DELETE", "/entries/"+e.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Errorf("delete body = %s", rec.Body.String())
	}

	rec = doRequest(t, h, "DELETE", "/entries/"+e.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

// --- GET /search ---

func TestHandleSearch(t *testing.T) {
	h, svc := setupTest(t)
	seedEntry(t, svc, "Moonlit Sonata", "Poems")

	rec := doRequest(t, h, "GET", "/search?q=moonl", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var results []ops.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Moonlit Sonata" {
		t.Errorf("results = %v", results)
	}
	if len(results[0].Matches) == 0 {
		t.Error("result carries no match spans")
	}
}

// Short queries are a valid empty response, not an error.
func TestHandleSearchShortQuery(t *testing.T) {
	h, _ := setupTest(t)

	for _, target := range []string{"/search", "/search?q=", "/search?q=a"} {
		rec := doRequest(t, h, "GET", target, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", target, rec.Code)
		}
		if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
			t.Errorf("%s: body = %s, want []", target, body)
		}
	}
}

// --- POST /entries/{id}/views ---

func TestHandleIncrementViews(t *testing.T) {
	h, svc := setupTest(t)
	e := seedEntry(t, svc, "Watched", "Notes")

	rec := doRequest(t, h, "POST", "/entries/"+e.ID+"/views", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = doRequest(t, h, "GET", "/entries/"+e.ID, "")
	if got := decodeEntry(t, rec); got.Views != 1 {
		t.Errorf("views = %d, want 1", got.Views)
	}
}

// --- GET /counts ---

func TestHandleCounts(t *testing.T) {
	h, svc := setupTest(t)
	seedEntry(t, svc, "One", "Poems")

	rec := doRequest(t, h, "GET", "/counts", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var counts []ops.CategoryCount
	if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
		t.Fatalf("decode counts: %v", err)
	}
	if len(counts) != len(entry.Categories) {
		t.Errorf("counts rows = %d, want one per category", len(counts))
	}
}

// --- GET /healthz ---

func TestHandleHealthz(t *testing.T) {
	h, _ := setupTest(t)

	rec := doRequest(t, h, "GET", "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	h, _ := setupTest(t)

	rec := doRequest(t, h, "GET", "/healthz", "")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}
