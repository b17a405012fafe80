package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/lawsearch/internal/index"
	"github.com/dgallion1/lawsearch/internal/search"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for lawsearch.
type Server struct {
	router chi.Router
	store  *index.Store
	engine *search.Engine
	log    *slog.Logger
}

// NewServer creates and configures the HTTP server.
func NewServer(store *index.Store, engine *search.Engine, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		engine: engine,
		log:    log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Get("/api/search", s.handleSearch)
	r.Get("/api/law-types", s.handleLawTypes)
	r.Post("/api/reindex", s.handleReindex)

	// Source documents for download links in search results.
	r.Get("/laws_doc/*", s.handleServeDocument)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
