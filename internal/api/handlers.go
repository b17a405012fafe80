package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// handleSearch answers keyword queries: ?q=<keyword>&type=<law title|all>.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("q"))
	lawType := strings.TrimSpace(r.URL.Query().Get("type"))
	if lawType == "" {
		lawType = "all"
	}

	results, err := s.engine.Search(keyword, lawType)
	if err != nil {
		s.log.Error("search failed", "keyword", keyword, "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"success":  true,
		"keyword":  keyword,
		"law_type": lawType,
		"total":    len(results),
		"results":  results,
	})
}

// handleLawTypes lists the distinct law titles for the type filter dropdown.
func (s *Server) handleLawTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.engine.LawTypes()
	if err != nil {
		s.log.Error("listing law types failed", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"success": true,
		"types":   types,
	})
}

// handleReindex rebuilds the whole index on demand. This is the recovery
// path for a corrupt artifact.
func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	laws, err := s.store.Build()
	if err != nil {
		s.log.Error("reindex failed", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"success":     true,
		"total_count": len(laws),
	})
}

// handleServeDocument serves the original source files so results can link
// back to them.
func (s *Server) handleServeDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	// Reject path traversal; documents live flat in the docs directory.
	if name == "" || name != filepath.Base(name) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.store.DocsDir(), name))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   msg,
	})
}
