package http

import (
	"net/http"

	"github.com/go-chi/render"

	"ossreport/pkg/contracts"
	api "ossreport/pkg/contracts/api/v1"
)

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	cache   DatasetCache
	dataDir string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cache DatasetCache, dataDir string) *HealthHandler {
	return &HealthHandler{cache: cache, dataDir: dataDir}
}

// HealthCheck handles GET /healthz
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, api.HealthResponse{
		Status:       "ok",
		Version:      contracts.GetVersionInfo(),
		CacheEntries: h.cache.Len(),
		DataDir:      h.dataDir,
	})
}
