package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgallion1/lawsearch/internal/config"
	"github.com/dgallion1/lawsearch/internal/index"
	"github.com/dgallion1/lawsearch/internal/search"
)

func testServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		DocsDir:      filepath.Join(dir, "laws_doc"),
		IndexFile:    filepath.Join(dir, "instance", "laws_index.json"),
		IndexSource:  "本地文件",
		AcceptedExts: config.ParseExts(".txt"),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := index.NewStore(cfg, log)
	engine := search.NewEngine(store, log)
	return NewServer(store, engine, log), cfg.DocsDir
}

func writeDoc(t *testing.T, docsDir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(docsDir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func doRequest(t *testing.T, srv *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	srv, _ := testServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandleSearch(t *testing.T) {
	srv, docsDir := testServer(t)
	writeDoc(t, docsDir, "刑法_1997.txt", "第一条 盗窃公私财物。\n第二条 多次盗窃。")

	rec := doRequest(t, srv, http.MethodGet, "/api/search?q=盗窃")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Keyword string `json:"keyword"`
		LawType string `json:"law_type"`
		Total   int    `json:"total"`
		Results []struct {
			Title        string `json:"title"`
			TotalMatches int    `json:"total_matches"`
		} `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success true")
	}
	if resp.Keyword != "盗窃" {
		t.Errorf("expected keyword echoed, got %q", resp.Keyword)
	}
	if resp.LawType != "all" {
		t.Errorf("expected default law_type all, got %q", resp.LawType)
	}
	if resp.Total != 1 || len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got total=%d len=%d", resp.Total, len(resp.Results))
	}
	if resp.Results[0].Title != "刑法" || resp.Results[0].TotalMatches != 2 {
		t.Errorf("unexpected result %+v", resp.Results[0])
	}
}

func TestHandleSearch_NoMatchesIsSuccess(t *testing.T) {
	srv, docsDir := testServer(t)
	writeDoc(t, docsDir, "刑法_1997.txt", "第一条 正文。")

	rec := doRequest(t, srv, http.MethodGet, "/api/search?q=不存在的词")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Success bool `json:"success"`
		Total   int  `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Total != 0 {
		t.Errorf("expected empty success response, got %+v", resp)
	}
}

func TestHandleSearch_CorruptIndex(t *testing.T) {
	srv, docsDir := testServer(t)
	writeDoc(t, docsDir, "刑法_1997.txt", "第一条 正文。")

	indexFile := filepath.Join(filepath.Dir(docsDir), "instance", "laws_index.json")
	if err := os.MkdirAll(filepath.Dir(indexFile), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(indexFile, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/search?q=正文")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for corrupt index, got %d", rec.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("expected failure envelope with error, got %+v", resp)
	}
}

func TestHandleLawTypes(t *testing.T) {
	srv, docsDir := testServer(t)
	writeDoc(t, docsDir, "刑法_1997.txt", "第一条 正文。")
	writeDoc(t, docsDir, "民法典_2020.txt", "第一条 民事主体。")

	rec := doRequest(t, srv, http.MethodGet, "/api/law-types")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Success bool     `json:"success"`
		Types   []string `json:"types"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || len(resp.Types) != 2 {
		t.Errorf("expected 2 types, got %+v", resp)
	}
}

func TestHandleReindex(t *testing.T) {
	srv, docsDir := testServer(t)
	writeDoc(t, docsDir, "刑法_1997.txt", "第一条 正文。")

	rec := doRequest(t, srv, http.MethodPost, "/api/reindex")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success    bool `json:"success"`
		TotalCount int  `json:"total_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.TotalCount != 1 {
		t.Errorf("unexpected reindex response %+v", resp)
	}
}

func TestHandleServeDocument(t *testing.T) {
	srv, docsDir := testServer(t)
	writeDoc(t, docsDir, "刑法_1997.txt", "第一条 正文。")

	rec := doRequest(t, srv, http.MethodGet, "/laws_doc/刑法_1997.txt")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected file contents in response")
	}
}

func TestHandleServeDocument_RejectsNestedPaths(t *testing.T) {
	srv, docsDir := testServer(t)
	writeDoc(t, docsDir, "刑法_1997.txt", "第一条 正文。")

	rec := doRequest(t, srv, http.MethodGet, "/laws_doc/sub/刑法_1997.txt")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for nested path, got %d", rec.Code)
	}
}
