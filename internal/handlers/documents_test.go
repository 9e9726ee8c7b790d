package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"mdtable-dashboard/internal/charts"
	"mdtable-dashboard/internal/service"
	"mdtable-dashboard/internal/service/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// multipartBody builds an upload request body with the given file and extra fields.
func multipartBody(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		_, _ = io.WriteString(part, content)
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("WriteField() error = %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return body, writer.FormDataContentType()
}

func documentRouter(h *DocumentHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/documents", h.Upload)
	r.Get("/api/documents/{id}", h.Get)
	r.Get("/api/documents/{id}/charts", h.Charts)
	r.Delete("/api/documents/{id}", h.Delete)
	return r
}

func TestNewDocumentHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockDashboardService(ctrl)
	handler := NewDocumentHandler(mockService, 0)

	if handler.dashboards != mockService {
		t.Error("NewDocumentHandler() dashboards not set correctly")
	}
	if handler.maxUploadBytes != DefaultMaxUploadBytes {
		t.Errorf("NewDocumentHandler() maxUploadBytes = %d, want %d", handler.maxUploadBytes, DefaultMaxUploadBytes)
	}
}

func TestDocumentHandler_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name          string
		filename      string
		content       string
		fields        map[string]string
		rawBody       string
		mockSetup     func(*mocks.MockDashboardService)
		wantStatus    int
		checkResponse func(*httptest.ResponseRecorder) bool
	}{
		{
			name:     "successful upload",
			filename: "README.md",
			content:  "| Dataset Type | A |\n|---|---|\n| GAN | 1 |",
			fields:   map[string]string{"replaces": "old-id", "metric": "A"},
			mockSetup: func(m *mocks.MockDashboardService) {
				m.EXPECT().
					Analyze(gomock.Any(), service.AnalyzeRequest{
						Filename:  "README.md",
						Content:   []byte("| Dataset Type | A |\n|---|---|\n| GAN | 1 |"),
						Replaces:  "old-id",
						Selection: charts.Selection{Metric: "A"},
					}).
					Return(service.Dashboard{ID: "new-id", TableFound: true}, nil)
			},
			wantStatus: http.StatusCreated,
			checkResponse: func(w *httptest.ResponseRecorder) bool {
				var resp service.Dashboard
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					return false
				}
				return resp.ID == "new-id" && resp.TableFound
			},
		},
		{
			name:     "table not found is not an error",
			filename: "README.md",
			content:  "nothing here",
			mockSetup: func(m *mocks.MockDashboardService) {
				m.EXPECT().
					Analyze(gomock.Any(), gomock.Any()).
					Return(service.Dashboard{ID: "id", Message: service.MessageNoTable}, nil)
			},
			wantStatus: http.StatusCreated,
			checkResponse: func(w *httptest.ResponseRecorder) bool {
				return strings.Contains(w.Body.String(), service.MessageNoTable)
			},
		},
		{
			name:       "missing file",
			fields:     map[string]string{"metric": "A"},
			mockSetup:  func(m *mocks.MockDashboardService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not multipart",
			rawBody:    "plain text",
			mockSetup:  func(m *mocks.MockDashboardService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:     "validation error",
			filename: "README.txt",
			mockSetup: func(m *mocks.MockDashboardService) {
				m.EXPECT().
					Analyze(gomock.Any(), gomock.Any()).
					Return(service.Dashboard{}, &service.ValidationError{Field: "file", Message: "must be a .md file"})
			},
			wantStatus: http.StatusBadRequest,
			checkResponse: func(w *httptest.ResponseRecorder) bool {
				var resp ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					return false
				}
				return strings.Contains(resp.Error, "must be a .md file")
			},
		},
		{
			name:     "service error",
			filename: "README.md",
			mockSetup: func(m *mocks.MockDashboardService) {
				m.EXPECT().
					Analyze(gomock.Any(), gomock.Any()).
					Return(service.Dashboard{}, errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := mocks.NewMockDashboardService(ctrl)
			tt.mockSetup(mockService)
			router := documentRouter(NewDocumentHandler(mockService, 0))

			var req *http.Request
			if tt.rawBody != "" {
				req = httptest.NewRequest(http.MethodPost, "/api/documents", strings.NewReader(tt.rawBody))
				req.Header.Set("Content-Type", "text/plain")
			} else {
				body, contentType := multipartBody(t, tt.filename, tt.content, tt.fields)
				req = httptest.NewRequest(http.MethodPost, "/api/documents", body)
				req.Header.Set("Content-Type", contentType)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Upload() status = %v, want %v (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.checkResponse != nil && !tt.checkResponse(w) {
				t.Error("Upload() response validation failed")
			}
		})
	}
}

func TestDocumentHandler_Upload_TooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockDashboardService(ctrl)
	router := documentRouter(NewDocumentHandler(mockService, 64))

	body, contentType := multipartBody(t, "README.md", strings.Repeat("x", 4096), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Upload() status = %v, want %v", w.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestDocumentHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		path       string
		mockSetup  func(*mocks.MockDashboardService)
		wantStatus int
	}{
		{
			name: "found",
			path: "/api/documents/abc?metric=LFW",
			mockSetup: func(m *mocks.MockDashboardService) {
				m.EXPECT().
					Get(gomock.Any(), "abc", charts.Selection{Metric: "LFW"}).
					Return(service.Dashboard{ID: "abc"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			path: "/api/documents/missing",
			mockSetup: func(m *mocks.MockDashboardService) {
				m.EXPECT().
					Get(gomock.Any(), "missing", charts.Selection{}).
					Return(service.Dashboard{}, service.WrapError(service.ErrNotFound, "document missing"))
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := mocks.NewMockDashboardService(ctrl)
			tt.mockSetup(mockService)
			router := documentRouter(NewDocumentHandler(mockService, 0))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Get() status = %v, want %v", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestDocumentHandler_Charts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		path       string
		mockSetup  func(*mocks.MockDashboardService)
		wantStatus int
	}{
		{
			name: "new selection",
			path: "/api/documents/abc/charts?metric=LFW&x=LFW&y=CFP-FP",
			mockSetup: func(m *mocks.MockDashboardService) {
				m.EXPECT().
					Charts(gomock.Any(), "abc", charts.Selection{Metric: "LFW", X: "LFW", Y: "CFP-FP"}).
					Return(service.ChartSet{Warnings: []string{}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "bad selection",
			path: "/api/documents/abc/charts?x=LFW&y=LFW",
			mockSetup: func(m *mocks.MockDashboardService) {
				m.EXPECT().
					Charts(gomock.Any(), "abc", charts.Selection{X: "LFW", Y: "LFW"}).
					Return(service.ChartSet{}, &service.ValidationError{Field: "y", Message: "must differ from x"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid input sentinel",
			path: "/api/documents/abc/charts",
			mockSetup: func(m *mocks.MockDashboardService) {
				m.EXPECT().
					Charts(gomock.Any(), "abc", charts.Selection{}).
					Return(service.ChartSet{}, service.ErrInvalidInput)
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := mocks.NewMockDashboardService(ctrl)
			tt.mockSetup(mockService)
			router := documentRouter(NewDocumentHandler(mockService, 0))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Charts() status = %v, want %v", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestDocumentHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockDashboardService(ctrl)
	mockService.EXPECT().Discard(gomock.Any(), "abc").Return(nil)
	mockService.EXPECT().Discard(gomock.Any(), "broken").Return(errors.New("store down"))
	router := documentRouter(NewDocumentHandler(mockService, 0))

	req := httptest.NewRequest(http.MethodDelete, "/api/documents/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("Delete() status = %v, want %v", w.Code, http.StatusNoContent)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/documents/broken", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Delete() status = %v, want %v", w.Code, http.StatusInternalServerError)
	}
}
