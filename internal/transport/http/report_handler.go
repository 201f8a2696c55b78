package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ossreport/internal/exporter"
	apierrors "ossreport/internal/errors"
	"ossreport/internal/middleware"
	"ossreport/internal/services"
	api "ossreport/pkg/contracts/api/v1"
	"ossreport/pkg/contracts/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler builds reports from the workbooks of the data directory
type ReportHandler struct {
	service      ReportServiceInterface
	dataDir      string
	validator    *middleware.Validator
	xlsx         *exporter.XLSXWriter
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(service ReportServiceInterface, dataDir string, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportHandler{
		service:      service,
		dataDir:      dataDir,
		validator:    middleware.NewValidator(),
		xlsx:         exporter.NewXLSXWriter(logger),
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("component", "report_handler")),
	}
}

// Routes returns the report routes
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetReport)
	return r
}

// GetReport handles GET /api/v1/reports?year=2025&period=TW+II[&format=xlsx]
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	period, err := domain.ParsePeriodSpec(q.Period, q.Year)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("period", err.Error()))
		return
	}

	sources, err := h.service.DiscoverSources(r.Context(), h.dataDir, q.Year)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.Generate(r.Context(), services.ReportRequest{
		Period:  period,
		Sources: sources,
		History: h.service.DiscoverHistory(r.Context(), h.dataDir, period),
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if q.Format == "xlsx" {
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exporter.BaseName(report)+".xlsx"))
		if err := h.xlsx.Write(w, exporter.ReportTables(report)); err != nil {
			// headers are gone, the client sees a truncated file
			h.logger.ErrorContext(r.Context(), "failed to stream report workbook",
				slog.String("report_id", report.ID),
				slog.String("error", err.Error()))
		}
		return
	}

	render.JSON(w, r, report)
}

func (h *ReportHandler) parseQuery(r *http.Request) (api.ReportQuery, error) {
	values := r.URL.Query()
	q := api.ReportQuery{
		Period: values.Get("period"),
		Format: values.Get("format"),
	}
	if y := values.Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return q, apierrors.ErrValidation("year", "year must be a valid integer")
		}
		q.Year = year
	}
	return q, h.validator.ValidateStruct(q)
}
