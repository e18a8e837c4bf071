package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/accounts-be/internal/api/handlers"
	"github.com/isdelr/accounts-be/internal/api/middleware"
	"github.com/isdelr/accounts-be/internal/metrics"
	"github.com/isdelr/accounts-be/internal/services"
)

// Options tunes the router's cross-cutting behaviour.
type Options struct {
	ForceHTTPS bool
}

// NewRouter creates and configures a new Chi router.
func NewRouter(accountService services.AccountServiceProvider, opts Options) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(metrics.InstrumentHandler)

	// Response policy
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.ForceHTTPS(opts.ForceHTTPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Location"},
		MaxAge:         300,
	}))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	accountHandler := handlers.NewAccountHandler(accountService)

	r.Get("/", handlers.Index)
	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// REST API endpoints for accounts
	r.Get("/accounts", accountHandler.GetAll)
	r.Post("/accounts", accountHandler.Create)
	r.Get("/accounts/{id}", accountHandler.Get)
	r.Put("/accounts/{id}", accountHandler.Update)
	r.Delete("/accounts/{id}", accountHandler.Delete)

	return r
}
