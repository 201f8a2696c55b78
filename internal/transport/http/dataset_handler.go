package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "ossreport/internal/errors"
	"ossreport/internal/middleware"
	api "ossreport/pkg/contracts/api/v1"
)

// DatasetHandler lists the data directory and controls the dataset cache
type DatasetHandler struct {
	service      ReportServiceInterface
	cache        DatasetCache
	dataDir      string
	validator    *middleware.Validator
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(service ReportServiceInterface, cache DatasetCache, dataDir string, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *DatasetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetHandler{
		service:      service,
		cache:        cache,
		dataDir:      dataDir,
		validator:    middleware.NewValidator(),
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("component", "dataset_handler")),
	}
}

// Routes returns the dataset routes
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListDatasets)
	return r
}

// ListDatasets handles GET /api/v1/datasets
func (h *DatasetHandler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.ListWorkbooks(r.Context(), h.dataDir)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	resp := api.DatasetListResponse{
		Files:        make([]api.DatasetFile, 0, len(found)),
		Unclassified: []string{},
	}
	for _, f := range found {
		resp.Files = append(resp.Files, api.DatasetFile{
			Name:     f.Name,
			Kind:     f.Kind,
			Year:     f.Year,
			Size:     f.Size,
			Modified: f.ModTime,
		})
		if f.Kind == "" {
			resp.Unclassified = append(resp.Unclassified, f.Name)
		}
	}
	render.JSON(w, r, resp)
}

// InvalidateCache handles POST /api/v1/cache/invalidate. An empty body or
// file_id purges every cached dataset.
func (h *DatasetHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	var req api.CacheInvalidateRequest
	if r.Body != nil {
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
			return
		}
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var removed int
	if req.FileID == "" {
		removed = h.cache.Purge()
	} else {
		removed = h.cache.Invalidate(req.FileID)
	}

	h.logger.InfoContext(r.Context(), "dataset cache invalidated",
		slog.String("file_id", req.FileID),
		slog.Int("removed", removed))

	render.JSON(w, r, api.CacheInvalidateResponse{Removed: removed, Remaining: h.cache.Len()})
}
