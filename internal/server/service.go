// Package server exposes the extraction pipeline over HTTP: multipart
// upload, per-item approval, export download and persistence.
package server

import (
	"log/slog"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/docstract/docstract/internal/archive"
	"github.com/docstract/docstract/internal/batch"
	"github.com/docstract/docstract/internal/export"
	"github.com/docstract/docstract/internal/pipeline"
	"github.com/docstract/docstract/internal/repository"
)

// Service wires the pipeline, expander, exporter and document store behind
// HTTP handlers. Batches are session state, held in memory for the lifetime
// of the process.
type Service struct {
	pipeline *pipeline.Pipeline
	expander *archive.Expander
	exporter *export.Service
	store    repository.DocumentStore
	logger   *slog.Logger

	maxUploadBytes int64

	mu      sync.RWMutex
	batches map[uuid.UUID]*batch.Batch
}

func NewService(
	pl *pipeline.Pipeline,
	expander *archive.Expander,
	exporter *export.Service,
	store repository.DocumentStore,
	maxUploadBytes int64,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		pipeline:       pl,
		expander:       expander,
		exporter:       exporter,
		store:          store,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
		batches:        make(map[uuid.UUID]*batch.Batch),
	}
}

// Router builds the HTTP routing table.
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/batches", s.handleUpload)
	r.Route("/batches/{batchID}", func(r chi.Router) {
		r.Get("/", s.handleGetBatch)
		r.Get("/export", s.handleExportBatch)
		r.Route("/items/{index}", func(r chi.Router) {
			r.Post("/approval", s.handleApproval)
			r.Get("/export", s.handleExportItem)
			r.Post("/save", s.handleSave)
		})
	})
	return r
}

func (s *Service) putBatch(b *batch.Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[b.ID] = b
}

func (s *Service) getBatch(id uuid.UUID) (*batch.Batch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.batches[id]
	return b, ok
}
