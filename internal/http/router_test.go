package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"mdtable-dashboard/internal/charts"
	"mdtable-dashboard/internal/service"
	servicemocks "mdtable-dashboard/internal/service/mocks"
	sessionmocks "mdtable-dashboard/internal/session/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestRouter(t *testing.T) (http.Handler, *servicemocks.MockDashboardService, *sessionmocks.MockStore) {
	ctrl := gomock.NewController(t)

	mockService := servicemocks.NewMockDashboardService(ctrl)
	mockStore := sessionmocks.NewMockStore(ctrl)

	router := NewRouter(&Deps{
		DashboardService: mockService,
		Sessions:         mockStore,
		DashboardTitle:   "Test Dashboard",
	})
	return router, mockService, mockStore
}

func TestNewRouter(t *testing.T) {
	router, _, _ := newTestRouter(t)
	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		mockSetup  func(*servicemocks.MockDashboardService, *sessionmocks.MockStore)
		wantStatus int
	}{
		{
			name:       "GET root serves HTML",
			method:     http.MethodGet,
			path:       "/",
			mockSetup:  func(*servicemocks.MockDashboardService, *sessionmocks.MockStore) {},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET health",
			method: http.MethodGet,
			path:   "/api/health",
			mockSetup: func(_ *servicemocks.MockDashboardService, s *sessionmocks.MockStore) {
				s.EXPECT().Len(gomock.Any()).Return(0)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST /api/documents exists",
			method:     http.MethodPost,
			path:       "/api/documents",
			mockSetup:  func(*servicemocks.MockDashboardService, *sessionmocks.MockStore) {},
			wantStatus: http.StatusBadRequest, // Bad request due to missing multipart body, but route exists
		},
		{
			name:   "GET document",
			method: http.MethodGet,
			path:   "/api/documents/abc",
			mockSetup: func(m *servicemocks.MockDashboardService, _ *sessionmocks.MockStore) {
				m.EXPECT().Get(gomock.Any(), "abc", charts.Selection{}).Return(service.Dashboard{ID: "abc"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET charts",
			method: http.MethodGet,
			path:   "/api/documents/abc/charts",
			mockSetup: func(m *servicemocks.MockDashboardService, _ *sessionmocks.MockStore) {
				m.EXPECT().Charts(gomock.Any(), "abc", charts.Selection{}).Return(service.ChartSet{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "DELETE document",
			method: http.MethodDelete,
			path:   "/api/documents/abc",
			mockSetup: func(m *servicemocks.MockDashboardService, _ *sessionmocks.MockStore) {
				m.EXPECT().Discard(gomock.Any(), "abc").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "GET /api/documents method not allowed",
			method:     http.MethodGet,
			path:       "/api/documents",
			mockSetup:  func(*servicemocks.MockDashboardService, *sessionmocks.MockStore) {},
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "preflight",
			method:     http.MethodOptions,
			path:       "/api/documents",
			mockSetup:  func(*servicemocks.MockDashboardService, *sessionmocks.MockStore) {},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService, mockStore := newTestRouter(t)
			tt.mockSetup(mockService, mockStore)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/documents", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Check CORS headers are present
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Router should apply CORS middleware")
	}
}
