package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"xref-api/internal/handlers"
	"xref-api/internal/service"
	"xref-api/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	XrefService   service.XrefService
	DocumentStore storage.DocumentStore
	DB            *sql.DB
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	healthHandler := handlers.NewHealthHandler(deps.DB)
	docsHandler := handlers.NewDocumentsHandler(deps.DocumentStore)
	xrefHandler := handlers.NewXrefHandler(deps.XrefService)

	r.Get("/health", healthHandler.ServeHTTP)

	// Register API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/reftypes", xrefHandler.Types)

		r.Route("/documents", func(r chi.Router) {
			r.Post("/", docsHandler.Create)
			r.Get("/", docsHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", docsHandler.Get)
				r.Delete("/", docsHandler.Delete)

				r.Get("/labels", xrefHandler.Labels)
				r.Get("/resolve", xrefHandler.Resolve)
				r.Get("/infer", xrefHandler.Infer)
				r.Post("/validate", xrefHandler.Validate)
				r.Get("/markers", xrefHandler.Markers)
			})
		})
	})

	return r
}
