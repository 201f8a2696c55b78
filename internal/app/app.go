package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"ossreport/internal/cache"
	"ossreport/internal/config"
	"ossreport/internal/infrastructure"
	"ossreport/internal/services"
	handlers "ossreport/internal/transport/http"
	"ossreport/pkg/contracts"
)

// Application represents the report server and everything it owns
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
	Cache         *cache.DatasetCache
	Service       *services.ReportService
	Router        http.Handler
	Server        *http.Server
}

// NewApplication wires configuration, telemetry, the report service and the
// router. A nil logger falls back to the global one.
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	logger.Info("Application starting",
		slog.String("service", cfg.Telemetry.ServiceName),
		slog.String("version", contracts.Version))

	paths, err := cfg.ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	businessMetrics, err := infrastructure.CreateBusinessMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       businessMetrics,
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices builds the shared dataset cache and the report service
func (a *Application) initializeServices() error {
	datasetCache, err := cache.New(a.Config.Cache.Size, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create dataset cache: %w", err)
	}
	a.Cache = datasetCache

	service, err := services.NewReportService(a.Config, services.ReportServiceOptions{
		Cache:   datasetCache,
		Tracer:  a.OTelProviders.Tracer,
		Metrics: a.Metrics,
		Logger:  a.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize report service: %w", err)
	}
	a.Service = service
	return nil
}

func (a *Application) setupRouter() {
	a.Router = handlers.NewRouter(handlers.RouterDeps{
		Config:          a.Config,
		DataDir:         a.Paths.DataDir,
		Service:         a.Service,
		Cache:           a.Cache,
		Metrics:         a.OTelProviders.PrometheusHTTP,
		Tracer:          a.OTelProviders.Tracer,
		BusinessMetrics: a.Metrics,
		Logger:          a.Logger,
	})
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         net.JoinHostPort(a.Config.Server.Host, fmt.Sprint(a.Config.Server.Port)),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start begins serving in the background. A listener failure cancels ctx
// through cancel instead of exiting the process.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("address", a.Server.Addr),
		slog.String("data_dir", a.Paths.DataDir),
		slog.String("output_dir", a.Paths.OutputDir),
		slog.String("level", a.Config.Logging.Level))

	listener, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}

	go func() {
		if err := a.Server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	if err := a.performStartupHealthCheck(ctx); err != nil {
		a.Logger.WarnContext(ctx, "Startup health check warnings", slog.String("warnings", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", listener.Addr().String()))
	return nil
}

// Stop drains in-flight requests and flushes telemetry
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete",
		slog.Int("cached_datasets", a.Cache.Len()))
	return nil
}

// Run serves until SIGINT, SIGTERM or a server failure
func (a *Application) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	<-ctx.Done()
	a.Logger.InfoContext(ctx, "Received shutdown signal")

	return a.Stop(ctx)
}

// performStartupHealthCheck reports a missing data directory and an output
// directory that cannot be written. Neither stops the server.
func (a *Application) performStartupHealthCheck(ctx context.Context) error {
	var warnings []string

	if info, err := os.Stat(a.Paths.DataDir); err != nil || !info.IsDir() {
		warnings = append(warnings, fmt.Sprintf("data directory not found: %s", a.Paths.DataDir))
	}

	testFile := filepath.Join(a.Paths.OutputDir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		warnings = append(warnings, fmt.Sprintf("output directory not writable: %s", a.Paths.OutputDir))
	} else {
		os.Remove(testFile)
	}

	if len(warnings) > 0 {
		return fmt.Errorf("startup health check warnings: %s", strings.Join(warnings, "; "))
	}

	a.Logger.InfoContext(ctx, "Startup health check passed")
	return nil
}
