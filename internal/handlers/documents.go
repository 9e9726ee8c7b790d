package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"mdtable-dashboard/internal/charts"
	"mdtable-dashboard/internal/contextutil"
	"mdtable-dashboard/internal/service"
)

// DefaultMaxUploadBytes bounds the size of an uploaded document.
const DefaultMaxUploadBytes int64 = 10 << 20

// uploadField is the multipart form field carrying the markdown file.
const uploadField = "file"

// DocumentHandler serves uploads and the dashboards derived from them.
type DocumentHandler struct {
	dashboards     service.DashboardService
	maxUploadBytes int64
}

// NewDocumentHandler creates a new DocumentHandler. A non-positive
// maxUploadBytes falls back to DefaultMaxUploadBytes.
func NewDocumentHandler(dashboards service.DashboardService, maxUploadBytes int64) *DocumentHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &DocumentHandler{
		dashboards:     dashboards,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload handles POST /api/documents.
//
// The request is multipart/form-data with the markdown document in the
// "file" field. Optional fields: "replaces" (id of the document this one
// supersedes) and "metric", "x", "y" (chart selection).
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
			logger.WarnContext(ctx, "upload too large", "limit", h.maxUploadBytes, "error", err)
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		logger.WarnContext(ctx, "invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		logger.WarnContext(ctx, "missing upload", "error", err)
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read upload", "filename", header.Filename, "error", err)
		writeError(w, http.StatusBadRequest, "Failed to read file")
		return
	}

	dash, err := h.dashboards.Analyze(ctx, service.AnalyzeRequest{
		Filename:  header.Filename,
		Content:   content,
		Replaces:  r.FormValue("replaces"),
		Selection: selectionFromValues(r.MultipartForm.Value),
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to analyze document")
		return
	}

	writeJSON(w, ctx, http.StatusCreated, dash)
}

// Get handles GET /api/documents/{id}.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dash, err := h.dashboards.Get(ctx, chi.URLParam(r, "id"), selectionFromValues(r.URL.Query()))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load document")
		return
	}

	writeJSON(w, ctx, http.StatusOK, dash)
}

// Charts handles GET /api/documents/{id}/charts?metric=&x=&y=.
func (h *DocumentHandler) Charts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	set, err := h.dashboards.Charts(ctx, chi.URLParam(r, "id"), selectionFromValues(r.URL.Query()))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to build charts")
		return
	}

	writeJSON(w, ctx, http.StatusOK, set)
}

// Delete handles DELETE /api/documents/{id}.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.dashboards.Discard(ctx, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, ctx, err, "Failed to discard document")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func selectionFromValues(values url.Values) charts.Selection {
	return charts.Selection{
		Metric: values.Get("metric"),
		X:      values.Get("x"),
		Y:      values.Get("y"),
	}
}
