// Package api serves the statistical routines over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"hypokit/app"
	"hypokit/internal"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 8 << 20

// App represents the HTTP API application
type App struct {
	router   *chi.Mux
	analysis *app.AnalysisService
	logger   *internal.Logger
}

// NewApp creates the API around an analysis service. A nil service serves
// only the stateless endpoints; dataset endpoints answer 404.
func NewApp(analysis *app.AnalysisService) *App {
	a := &App{
		router:   chi.NewRouter(),
		analysis: analysis,
		logger:   internal.DefaultLogger.With("API"),
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
	a.router.Use(middleware.RequestSize(maxBodyBytes))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)

	a.router.Route("/api/v1", func(r chi.Router) {
		// Stateless computations on inline data
		r.Post("/kendall", a.handleKendall)
		r.Post("/correlation", a.handleCorrelation)
		r.Post("/kruskal", a.handleKruskal)
		r.Post("/adjust", a.handleAdjust)
		r.Post("/filter", a.handleFilter)
		r.Post("/compare", a.handleCompare)
		r.Post("/describe", a.handleDescribe)
		r.Get("/methods", a.handleMethods)

		// Computations on the configured data file
		r.Route("/dataset", func(r chi.Router) {
			r.Use(a.requireDataset)
			r.Get("/", a.handleDatasetInfo)
			r.Post("/reload", a.handleDatasetReload)
			r.Get("/correlation", a.handleDatasetCorrelation)
			r.Get("/kruskal", a.handleDatasetKruskal)
			r.Get("/compare", a.handleDatasetCompare)
			r.Get("/describe", a.handleDatasetDescribe)
			r.Post("/pairwise", a.handleDatasetPairwise)
		})
	})
}

// ServeHTTP implements http.Handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// requireDataset answers 404 when no data source is configured
func (a *App) requireDataset(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.analysis == nil {
			a.writeError(w, r, errNoDataset)
			return
		}
		next.ServeHTTP(w, r)
	})
}
