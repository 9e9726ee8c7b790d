package handlers

import (
	"bytes"
	"net/http"

	"mdtable-dashboard/internal/contextutil"
	"mdtable-dashboard/internal/service"
	"mdtable-dashboard/internal/web"
)

// PageHandler serves the dashboard page.
type PageHandler struct {
	data web.PageData
}

// NewPageHandler creates a PageHandler that renders the dashboard under title.
func NewPageHandler(title string, maxUploadBytes int64) *PageHandler {
	if title == "" {
		title = service.DefaultDashboardTitle
	}
	return &PageHandler{
		data: web.PageData{
			Title:          title,
			Prompt:         service.MessageNoDocument,
			MaxUploadBytes: maxUploadBytes,
		},
	}
}

// ServeHTTP handles GET /.
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var buf bytes.Buffer
	if err := web.Render(&buf, h.data); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to render page", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
