package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/dgallion1/specgest/internal/config"
	"github.com/dgallion1/specgest/internal/pipeline"
	"github.com/dgallion1/specgest/internal/specdoc"
)

const widgetDoc = `# Version 9.9

## Introduction

Widgets are things.

### Schema

#### Widget Object

This is the root object.

##### Fixed Fields

Field Name | Type | Description
---|:---:|---
name | string | Required. The widget's name.
`

func newTestServer(t *testing.T, apiKey string) (*Server, config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.SourceRoot = t.TempDir()
	cfg.TargetRoot = t.TempDir()
	cfg.Versions = []string{"9.9"}
	cfg.APIKey = apiKey
	cfg.MaxUploadBytes = 4096

	log := slog.New(slog.DiscardHandler)
	a := specdoc.NewAssembler(specdoc.WithLogger(log))
	orch := pipeline.NewOrchestrator(cfg, a, log)
	return NewServer(orch, a, log, cfg), cfg
}

func do(s *Server, method, path, body string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON error body, got %q", rec.Body.String())
	}
	msg, _ := body["error"].(string)
	return msg
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, "secret")
	rec := do(s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"status":"ok"}` {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestAuth(t *testing.T) {
	s, _ := newTestServer(t, "secret")

	tests := []struct {
		name   string
		header []string
		want   int
	}{
		{"missing", nil, http.StatusUnauthorized},
		{"wrong key", []string{"Authorization", "Bearer nope"}, http.StatusUnauthorized},
		{"wrong scheme", []string{"Authorization", "Basic secret"}, http.StatusUnauthorized},
		{"valid", []string{"Authorization", "Bearer secret"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, http.MethodGet, "/api/specifications", "", tt.header...)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestAuthDisabledWithoutKey(t *testing.T) {
	s, _ := newTestServer(t, "")
	rec := do(s, http.MethodGet, "/api/specifications", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 without configured key, got %d", rec.Code)
	}
}

func TestConvert(t *testing.T) {
	s, _ := newTestServer(t, "")
	rec := do(s, http.MethodPost, "/api/specifications", widgetDoc)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var spec specdoc.Specification
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if spec.Version != "9.9" {
		t.Errorf("expected version %q, got %q", "9.9", spec.Version)
	}
	if len(spec.Schemas) != 1 || spec.Schemas[0].Name != "Widget Object" {
		t.Fatalf("unexpected schemas %+v", spec.Schemas)
	}
	if f := spec.Schemas[0].Fields; len(f) != 1 || !f[0].Required {
		t.Errorf("expected one required field, got %+v", f)
	}
}

func TestConvert_Errors(t *testing.T) {
	s, _ := newTestServer(t, "")

	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty", "  \n", http.StatusBadRequest},
		{"too large", strings.Repeat("a", 5000), http.StatusRequestEntityTooLarge},
		{"no version", "# Title\n\nbody\n", http.StatusUnprocessableEntity},
		{"no schema", "# Version 3.1.0\n\n## Introduction\n\ntext\n", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, http.MethodPost, "/api/specifications", tt.body)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
			if errorOf(t, rec) == "" {
				t.Error("expected error message")
			}
		})
	}
}

func TestListAndGet(t *testing.T) {
	s, cfg := newTestServer(t, "")
	for name, body := range map[string]string{
		"3.1.0.json":      `{"version":"3.1.0"}`,
		"3.1.0.tree.json": `{}`,
		"2.0.json":        `{"version":"2.0"}`,
		"notes.txt":       `x`,
	} {
		if err := os.WriteFile(filepath.Join(cfg.TargetRoot, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	rec := do(s, http.MethodGet, "/api/specifications", "")
	var list struct {
		Versions []string `json:"versions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if strings.Join(list.Versions, ",") != "2.0,3.1.0" {
		t.Errorf("expected versions [2.0 3.1.0], got %v", list.Versions)
	}

	rec = do(s, http.MethodGet, "/api/specifications/3.1.0", "")
	if rec.Code != http.StatusOK || rec.Body.String() != `{"version":"3.1.0"}` {
		t.Errorf("expected stored record, got %d %q", rec.Code, rec.Body.String())
	}

	rec = do(s, http.MethodGet, "/api/specifications/1.2", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}

	rec = do(s, http.MethodGet, "/api/specifications/..", "")
	if rec.Code != http.StatusBadRequest && rec.Code != http.StatusNotFound {
		t.Errorf("expected traversal to be rejected, got %d", rec.Code)
	}
}

func TestListEmptyTarget(t *testing.T) {
	s, cfg := newTestServer(t, "")
	os.RemoveAll(cfg.TargetRoot)

	rec := do(s, http.MethodGet, "/api/specifications", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"versions": []`)) {
		t.Errorf("expected empty version list, got %s", rec.Body.String())
	}
}

func TestRun(t *testing.T) {
	s, cfg := newTestServer(t, "")
	if err := os.WriteFile(filepath.Join(cfg.SourceRoot, "9.9.md"), []byte(widgetDoc), 0644); err != nil {
		t.Fatal(err)
	}

	rec := do(s, http.MethodPost, "/api/runs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, err := os.Stat(filepath.Join(cfg.TargetRoot, "9.9.json")); err != nil {
		t.Errorf("expected record to be written: %v", err)
	}

	rec = do(s, http.MethodPost, "/api/runs", `{"versions":["9.9","4.0"]}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when a version fails, got %d", rec.Code)
	}
	var resp struct {
		Jobs []pipeline.JobSnapshot `json:"jobs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(resp.Jobs) != 2 || resp.Jobs[0].Status != pipeline.StatusCompleted || resp.Jobs[1].Status != pipeline.StatusFailed {
		t.Errorf("unexpected jobs %+v", resp.Jobs)
	}

	rec = do(s, http.MethodPost, "/api/runs", `{"versions":["../etc"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid version, got %d", rec.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	cfg := config.Default()
	cfg.TargetRoot = t.TempDir()
	a := specdoc.NewAssembler()
	s := NewServer(pipeline.NewOrchestrator(cfg, a, log), a, log, cfg)

	rec := do(s, http.MethodGet, "/api/specifications/1.2", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q", buf.String())
	}
	if entry["level"] != "WARN" {
		t.Errorf("expected WARN for a client error, got %v", entry["level"])
	}
	if entry["route"] != "/api/specifications/{version}" {
		t.Errorf("expected route pattern, got %v", entry["route"])
	}
	if entry["status"] != float64(http.StatusNotFound) {
		t.Errorf("expected status 404, got %v", entry["status"])
	}
	if id, _ := entry["request_id"].(string); id == "" {
		t.Error("expected request id")
	}
	if b, _ := entry["bytes"].(float64); b <= 0 {
		t.Errorf("expected response size, got %v", entry["bytes"])
	}
}
