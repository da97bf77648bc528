package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/docstract/docstract/constants"
	"github.com/docstract/docstract/internal/batch"
	"github.com/docstract/docstract/internal/common"
	"github.com/docstract/docstract/internal/entity"
)

type itemView struct {
	Index    int                 `json:"index"`
	Filename string              `json:"filename"`
	Format   constants.Format    `json:"format"`
	Pages    int                 `json:"pages"`
	Tables   int                 `json:"tables"`
	Images   int                 `json:"images"`
	Text     string              `json:"text"`
	Fields   map[string][]string `json:"fields,omitempty"`
	Approved bool                `json:"approved"`
	Error    *errorView          `json:"error,omitempty"`
}

type errorView struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type batchView struct {
	ID       string     `json:"id"`
	Items    []itemView `json:"items"`
	Warnings []string   `json:"warnings,omitempty"`
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.respondError(w, http.StatusServiceUnavailable, common.NewAppError("HEALTH", "document store unreachable", common.ErrPersistenceFailure))
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload accepts one multipart file, expands archives one level deep,
// runs the pipeline over every item and stores the batch in the session.
func (s *Service) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, common.NewAppError("UPLOAD", "missing multipart field \"file\"", common.ErrInvalidInput))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, common.NewAppError("UPLOAD", "unreadable upload", common.ErrInvalidInput))
		return
	}

	item := entity.NewFileItem(header.Filename, data)
	if item.Format == constants.Unsupported {
		s.respondError(w, http.StatusUnsupportedMediaType,
			common.NewAppError("UPLOAD", fmt.Sprintf("unsupported file type: %s", header.Filename), common.ErrUnsupportedFormat))
		return
	}

	b := batch.New()
	items := []entity.FileItem{item}
	if item.Format == constants.Archive {
		expanded, warnings, err := s.expander.Expand(item.Data)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err)
			return
		}
		items = expanded
		for _, warn := range warnings {
			b.Warnings = append(b.Warnings, fmt.Sprintf("%s: %s", warn.Name, warn.Reason))
		}
	}

	for _, res := range s.pipeline.RunBatch(r.Context(), items) {
		b.Add(res)
	}

	s.putBatch(b)
	s.respondJSON(w, http.StatusCreated, viewOf(b))
}

func (s *Service) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	b, ok := s.lookupBatch(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, viewOf(b))
}

func (s *Service) handleApproval(w http.ResponseWriter, r *http.Request) {
	b, ok := s.lookupBatch(w, r)
	if !ok {
		return
	}
	index, ok := s.itemIndex(w, r)
	if !ok {
		return
	}

	var body struct {
		Approved bool `json:"approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, http.StatusBadRequest, common.NewAppError("APPROVAL", "invalid body", common.ErrInvalidInput))
		return
	}
	if err := b.Approve(index, body.Approved); err != nil {
		s.respondError(w, http.StatusNotFound, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"index": index, "approved": body.Approved})
}

// handleExportBatch streams a ZIP with one JSON document per approved item.
// No approved items yields an empty archive.
func (s *Service) handleExportBatch(w http.ResponseWriter, r *http.Request) {
	b, ok := s.lookupBatch(w, r)
	if !ok {
		return
	}
	data, err := b.ExportApproved(s.exporter)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", b.ID.String()+".zip"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Service) handleExportItem(w http.ResponseWriter, r *http.Request) {
	b, ok := s.lookupBatch(w, r)
	if !ok {
		return
	}
	index, ok := s.itemIndex(w, r)
	if !ok {
		return
	}
	res, err := b.Get(index)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err)
		return
	}
	data, err := s.exporter.Single(res)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Stem()+".json"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleSave inserts {filename, content} into the document store. Every save
// is an insert; saving twice stores two documents.
func (s *Service) handleSave(w http.ResponseWriter, r *http.Request) {
	b, ok := s.lookupBatch(w, r)
	if !ok {
		return
	}
	index, ok := s.itemIndex(w, r)
	if !ok {
		return
	}
	res, err := b.Get(index)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err)
		return
	}
	if res.Err != nil {
		s.respondError(w, http.StatusConflict, common.NewAppError("SAVE", "item failed extraction, nothing to save", common.ErrInvalidInput))
		return
	}
	if err := s.store.Insert(r.Context(), res.SourceName, res.Text()); err != nil {
		s.respondError(w, http.StatusBadGateway, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"filename": res.SourceName, "status": "saved"})
}

func (s *Service) lookupBatch(w http.ResponseWriter, r *http.Request) (*batch.Batch, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "batchID"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, common.NewAppError("BATCH_ID", "invalid batch id", common.ErrInvalidInput))
		return nil, false
	}
	b, ok := s.getBatch(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, common.NewAppError("BATCH_ID", "unknown batch", common.ErrNotFound))
		return nil, false
	}
	return b, true
}

func (s *Service) itemIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		s.respondError(w, http.StatusBadRequest, common.NewAppError("ITEM_INDEX", "invalid item index", common.ErrInvalidInput))
		return 0, false
	}
	return index, true
}

func viewOf(b *batch.Batch) batchView {
	view := batchView{ID: b.ID.String(), Warnings: b.Warnings, Items: []itemView{}}
	for i, res := range b.Results() {
		item := itemView{
			Index:    i,
			Filename: res.SourceName,
			Format:   res.Format,
			Pages:    len(res.Pages),
			Tables:   len(res.Tables),
			Images:   len(res.Images),
			Text:     res.Text(),
			Fields:   res.Fields,
			Approved: res.Approved,
		}
		if res.Err != nil {
			item.Error = &errorView{Kind: common.ErrorKind(res.Err), Message: res.Err.Error()}
		}
		view.Items = append(view.Items, item)
	}
	return view
}

func (s *Service) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Service) respondError(w http.ResponseWriter, status int, err error) {
	var appErr *common.AppError
	kind := common.ErrorKind(err)
	msg := err.Error()
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	s.respondJSON(w, status, map[string]any{"error": map[string]string{"kind": kind, "message": msg}})
}
