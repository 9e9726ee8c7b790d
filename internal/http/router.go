package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mdtable-dashboard/internal/handlers"
	"mdtable-dashboard/internal/service"
	"mdtable-dashboard/internal/session"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	DashboardService service.DashboardService
	Sessions         session.Store
	DashboardTitle   string
	MaxUploadBytes   int64
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	// Add CORS middleware
	r.Use(CORS)

	documentHandler := handlers.NewDocumentHandler(deps.DashboardService, deps.MaxUploadBytes)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.Sessions))

		r.Route("/documents", func(r chi.Router) {
			r.Post("/", documentHandler.Upload)
			r.Get("/{id}", documentHandler.Get)
			r.Get("/{id}/charts", documentHandler.Charts)
			r.Delete("/{id}", documentHandler.Delete)
		})
	})

	// Serve the dashboard page at root
	r.Method(http.MethodGet, "/", handlers.NewPageHandler(deps.DashboardTitle, deps.MaxUploadBytes))

	return r
}
