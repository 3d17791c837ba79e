package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/rbessler/inkwell/internal/cache"
	"github.com/rbessler/inkwell/internal/config"
	"github.com/rbessler/inkwell/internal/db"
	"github.com/rbessler/inkwell/internal/entry"
	"github.com/rbessler/inkwell/internal/ops"
)

// setupTestService creates a service over a temporary database.
func setupTestService(t *testing.T) *ops.Service {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	c, err := cache.New(cache.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to init cache: %v", err)
	}
	return ops.New(database, c, config.DefaultConfig(), nil)
}

// runApp runs the CLI with the given args, capturing stdout.
func runApp(t *testing.T, svc *ops.Service, args ...string) (string, error) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := newCLIApp(svc, config.DefaultConfig(), log)

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	runErr := app.Run(append([]string{"inkwell"}, args...))

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read captured stdout: %v", err)
	}
	return buf.String(), runErr
}

// TestParseTags tests the parseTags helper function.
func TestParseTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "multiple tags",
			input:    "foo,bar,baz",
			expected: []string{"foo", "bar", "baz"},
		},
		{
			name:     "tags with spaces",
			input:    " foo , bar ",
			expected: []string{"foo", "bar"},
		},
		{
			name:     "empty tags filtered",
			input:    "foo,,bar,",
			expected: []string{"foo", "bar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseTags(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("expected %d tags, got %d", len(tt.expected), len(result))
				return
			}
			for i, tag := range result {
				if tag != tt.expected[i] {
					t.Errorf("expected tag[%d]=%q, got %q", i, tt.expected[i], tag)
				}
			}
		})
	}
}

// TestCLICreateAndGet tests the create and get commands.
func TestCLICreateAndGet(t *testing.T) {
	svc := setupTestService(t)

	out, err := runApp(t, svc, "create", "--title", "CLI Poem", "--category", "Poems", "--tags", "verse,short")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var created entry.Entry
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("failed to parse create output: %v (output: %s)", err, out)
	}
	if created.ID == "" || created.Title != "CLI Poem" {
		t.Errorf("created entry = %+v", created)
	}
	if len(created.Tags) != 2 {
		t.Errorf("tags = %v", created.Tags)
	}

	out, err = runApp(t, svc, "get", created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !strings.Contains(out, "CLI Poem") {
		t.Errorf("get output missing title: %s", out)
	}
}

// TestCLIList tests the list command.
func TestCLIList(t *testing.T) {
	svc := setupTestService(t)

	if _, err := runApp(t, svc, "create", "--title", "First", "--category", "Notes"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	out, err := runApp(t, svc, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	var entries []entry.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("failed to parse list output: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("list length = %d, want 1", len(entries))
	}

	out, err = runApp(t, svc, "list", "--category", "Poems")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("failed to parse list output: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("filtered list length = %d, want 0", len(entries))
	}
}

// TestCLISearch tests the search command.
func TestCLISearch(t *testing.T) {
	svc := setupTestService(t)

	if _, err := runApp(t, svc, "create", "--title", "Moonlit Sonata", "--category", "Poems"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	out, err := runApp(t, svc, "search", "moonl")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	var results []ops.SearchResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("failed to parse search output: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Moonlit Sonata" {
		t.Errorf("results = %v", results)
	}
}

// TestCLIDelete tests the delete command.
func TestCLIDelete(t *testing.T) {
	svc := setupTestService(t)

	out, err := runApp(t, svc, "create", "--title", "Doomed", "--category", "Notes")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	var created entry.Entry
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("failed to parse create output: %v", err)
	}

	out, err = runApp(t, svc, "delete", created.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !strings.Contains(out, `"success": true`) {
		t.Errorf("delete output = %s", out)
	}

	if _, err := runApp(t, svc, "get", created.ID); err == nil {
		t.Error("get after delete should fail")
	}
}

// TestCLIErrorFormat tests CLI error rendering.
func TestCLIErrorFormat(t *testing.T) {
	svc := setupTestService(t)

	_, err := runApp(t, svc, "get", "not-a-ulid")
	if err == nil {
		t.Fatal("expected error for malformed id")
	}
	if !strings.Contains(err.Error(), "VALIDATION_ERROR") {
		t.Errorf("error = %v, want the taxonomy code in the message", err)
	}
}
