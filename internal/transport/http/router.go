package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.opentelemetry.io/otel/trace"

	"ossreport/internal/config"
	apierrors "ossreport/internal/errors"
	"ossreport/internal/infrastructure"
	"ossreport/internal/middleware"
)

// RouterDeps carries everything the router wires together
type RouterDeps struct {
	Config  *config.Config
	DataDir string
	Service ReportServiceInterface
	Cache   DatasetCache
	// Metrics serves /metrics; nil leaves the route out
	Metrics         http.Handler
	Tracer          trace.Tracer
	BusinessMetrics *infrastructure.BusinessMetrics
	Logger          *slog.Logger
}

// NewRouter builds the chi router of the report server
func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}

	errorHandler := apierrors.NewErrorHandler(logger, cfg.Server.IncludeStack)
	errorMiddleware := apierrors.NewErrorMiddleware(errorHandler, logger)
	otelMiddleware := middleware.NewOTelMiddleware(deps.Tracer, deps.BusinessMetrics, logger)
	limiter := middleware.NewRateLimiter(cfg.Server.ReportRPS, cfg.Server.ReportBurst, errorHandler, logger)

	reports := NewReportHandler(deps.Service, deps.DataDir, errorHandler, logger)
	datasets := NewDatasetHandler(deps.Service, deps.Cache, deps.DataDir, errorHandler, logger)
	health := NewHealthHandler(deps.Cache, deps.DataDir)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(otelMiddleware.Handler)
	r.Use(errorMiddleware.Handler)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.HandleError(w, r, apierrors.NotFoundError(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.HandleError(w, r, apierrors.MethodNotAllowedError(r.Method))
	})

	r.Get("/healthz", health.HealthCheck)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(chimiddleware.Timeout(config.ReportGenerationTimeout))

		r.With(limiter.Handler).Mount("/reports", reports.Routes())
		r.Mount("/datasets", datasets.Routes())
		r.Post("/cache/invalidate", datasets.InvalidateCache)
	})

	return r
}
