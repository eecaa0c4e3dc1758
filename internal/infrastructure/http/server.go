package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/config"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/http/middleware"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/http/response"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/telemetry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const readHeaderTimeout = 5 * time.Second

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	config     *config.ServerConfig
	categories *handler.CategoryHandler
	products   *handler.ProductHandler
	logger     *slog.Logger
	telemetry  *telemetry.Telemetry
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.ServerConfig,
	categories *handler.CategoryHandler,
	products *handler.ProductHandler,
	logger *slog.Logger,
	telem *telemetry.Telemetry,
) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		config:     cfg,
		categories: categories,
		products:   products,
		logger:     logger,
		telemetry:  telem,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	meter := s.telemetry.MeterProvider.Meter(telemetry.InstrumentationName)
	s.router.Use(middleware.ActiveRequestsMiddleware(meter))
	s.router.Use(middleware.DurationMillisecondsMiddleware(meter))

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, "Not found")
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

// setupRoutes mounts the catalog both at the root and under /api, where
// the storefront calls it.
func (s *Server) setupRoutes() {
	s.catalogRoutes(s.router)
	s.router.Route("/api", s.catalogRoutes)

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	s.router.Get("/metrics", promhttp.HandlerFor(s.telemetry.Registry, promhttp.HandlerOpts{}).ServeHTTP)
}

func (s *Server) catalogRoutes(r chi.Router) {
	// inline group: middleware runs after routing, so the pattern is resolved
	r.Group(func(r chi.Router) {
		r.Use(middleware.HTTPRouteContext())

		r.Get("/categories", s.categories.ListCategories)
		r.Get("/categories/{slug}", s.categories.GetCategory)
		// empty path parameter: answered by the handler as a bad request
		r.Get("/categories/", s.categories.GetCategory)

		r.Get("/products", s.products.ListProducts)
		r.Get("/products/category/{category}", s.products.ListProductsByCategory)
		r.Get("/products/category/", s.products.ListProductsByCategory)
		r.Get("/products/{id}", s.products.GetProduct)

		r.Get("/collections/{collectionType}", s.products.ListCollection)
		r.Get("/search", s.products.Search)
	})
}

// Handler returns the router wrapped with otelhttp for request spans and
// the standard http.server.* metrics.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "http-server",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
		otelhttp.WithTracerProvider(s.telemetry.TracerProvider),
		otelhttp.WithMeterProvider(s.telemetry.MeterProvider),
		otelhttp.WithMetricAttributesFn(func(r *http.Request) []attribute.KeyValue {
			routePattern := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					routePattern = pattern
				}
			}
			return []attribute.KeyValue{
				attribute.String("http.route", routePattern),
			}
		}),
	)
}

// Start serves until Shutdown is called, which is not reported as an error
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		slog.String("address", s.httpServer.Addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
