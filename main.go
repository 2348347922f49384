package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ticketmetrics/models"
)

var monthPattern = regexp.MustCompile(`^[0-9]{4}-(0[1-9]|1[0-2])$`)

// Server handles HTTP requests and coordinates between the ingest
// pipeline and the snapshot store.
type Server struct {
	store models.SnapshotStore
	cfg   Config
}

func NewServer(store models.SnapshotStore, cfg Config) *Server {
	return &Server{
		store: store,
		cfg:   cfg,
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required and must not be empty", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	contentType := header.Header.Get("Content-Type")
	snapshot, err := IngestWorkbook(data, contentType, header.Filename, header.Size, s.cfg.MaxUploadBytes)
	if err != nil {
		var validation *ValidationError
		var workbook *WorkbookError
		switch {
		case errors.As(err, &validation):
			http.Error(w, validation.Error(), http.StatusBadRequest)
		case errors.As(err, &workbook):
			log.Printf("Rejected workbook %q: %v", header.Filename, err)
			http.Error(w, workbook.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	s.store.Replace(snapshot)
	log.Printf("Ingested %q: %d row(s), snapshot %s", header.Filename, len(snapshot.Rows), snapshot.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot.Report)
}

func (s *Server) handleGetRows(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 0
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "invalid 'page', must be >= 0", http.StatusBadRequest)
			return
		}
		page = n
	}

	size := s.cfg.DefaultPageSize
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 1000 {
			http.Error(w, "invalid 'size', must be within 1..1000", http.StatusBadRequest)
			return
		}
		size = n
	}

	month := q.Get("month")
	if month != "" && !monthPattern.MatchString(month) {
		http.Error(w, "invalid 'month' format, expected yyyy-MM", http.StatusBadRequest)
		return
	}

	response := QueryRows(s.store, page, size, q.Get("application"), month)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (s *Server) handleGetMetrics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	month := q.Get("month")
	if month != "" && !monthPattern.MatchString(month) {
		http.Error(w, "invalid 'month' format, expected yyyy-MM", http.StatusBadRequest)
		return
	}

	entries := QueryMetrics(s.store, q.Get("application"), month)
	result := []models.MetricsAPIEntry{}
	for _, entry := range entries {
		result = append(result, FormatAPIEntry(entry))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status": "ok",
	}

	if snapshot, ok := s.store.Current(); ok {
		response["snapshot"] = snapshot.ID
		response["rows"] = len(snapshot.Rows)
		response["ingestedAt"] = snapshot.IngestedAt
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// API routes
	r.Route("/api/tickets", func(r chi.Router) {
		r.Post("/upload", s.handleUpload)
		r.Get("/rows", s.handleGetRows)
		r.Get("/metrics", s.handleGetMetrics)
		r.Get("/health", s.handleHealth)
	})

	return r
}

func main() {
	cfg := LoadConfig()

	store := NewMemoryStore()
	server := NewServer(store, cfg)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on http://localhost%s", addr)
	if err := http.ListenAndServe(addr, server.routes()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
