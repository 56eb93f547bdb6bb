package rest

import (
	"net/http"

	"rollouthq/application/commands/bus"
	querybus "rollouthq/application/queries/bus"
	"rollouthq/application/services"
	"rollouthq/interfaces/http/rest/handlers"
	"rollouthq/interfaces/http/rest/middleware"
	pkgerrors "rollouthq/pkg/errors"
	"rollouthq/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Options tunes the router's outer middleware
type Options struct {
	EnableCORS     bool
	AllowedOrigins []string
	CircuitBreaker middleware.CircuitBreakerConfig
}

// Router creates and configures the HTTP router
type Router struct {
	commandBus    *bus.CommandBus
	queryBus      *querybus.QueryBus
	presign       *services.PresignService
	authenticator *middleware.Authenticator
	errors        *pkgerrors.ErrorHandler
	collector     *observability.Collector
	options       Options
	logger        *zap.Logger
}

// NewRouter creates a new router instance. collector may be nil.
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	presign *services.PresignService,
	authenticator *middleware.Authenticator,
	errorHandler *pkgerrors.ErrorHandler,
	collector *observability.Collector,
	options Options,
	logger *zap.Logger,
) *Router {
	if options.CircuitBreaker.Name == "" {
		options.CircuitBreaker = middleware.DefaultCircuitBreakerConfig("api")
	}
	return &Router{
		commandBus:    commandBus,
		queryBus:      queryBus,
		presign:       presign,
		authenticator: authenticator,
		errors:        errorHandler,
		collector:     collector,
		options:       options,
		logger:        logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(rt.errors.Middleware)
	if rt.collector != nil {
		router.Use(middleware.Metrics(rt.collector))
	}
	router.Use(middleware.JSONContentType)

	if rt.options.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.options.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errors.HandleStatus(w, r, http.StatusNotFound, "not found")
	})
	// Credentials are checked before the verb so anonymous callers see 401.
	router.MethodNotAllowed(rt.authenticator.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rt.errors.Handle(w, r, pkgerrors.NewMethodNotAllowedError())
	})).ServeHTTP)

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	albums := handlers.NewAlbumHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
	projects := handlers.NewProjectHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
	presign := handlers.NewPresignHandler(rt.presign, rt.errors, rt.logger)

	router.Group(func(r chi.Router) {
		r.Use(rt.authenticator.Middleware)
		r.Use(middleware.CircuitBreaker(rt.options.CircuitBreaker, rt.errors, rt.logger))

		// Album endpoints
		r.Get("/albums", albums.ListAlbums)
		r.Post("/albums", albums.CreateAlbum)
		r.Put("/albums", albums.UpdateAlbum)
		r.Delete("/albums", albums.DeleteAlbum)
		r.Delete("/albums/{id}", albums.DeleteAlbum)

		// Project endpoints
		r.Get("/projects", projects.ListProjects)
		r.Post("/projects", projects.CreateProject)
		r.Get("/projects/{id}", projects.GetProject)
		r.Put("/projects/{id}", projects.UpdateProject)
		r.Delete("/projects/{id}", projects.DeleteProject)
		r.Get("/projects/{id}/files", projects.ListFiles)
		r.Post("/projects/{id}/files", projects.CreateFile)

		r.Post("/uploads/presign", presign.Presign)
		r.Get("/me", handlers.Me(rt.errors))
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
