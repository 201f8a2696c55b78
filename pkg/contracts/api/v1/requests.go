// Package api contains the HTTP contract of the OSS report API.
// Version v1 represents the current stable API version.
package api

import (
	"time"

	"ossreport/pkg/contracts"
	"ossreport/pkg/contracts/domain"
)

// ReportQuery is the query of GET /api/v1/reports
type ReportQuery struct {
	Year   int    `json:"year" query:"year" validate:"required,gte=2000,lte=2100"`
	Period string `json:"period" query:"period" validate:"required,period"`
	Format string `json:"format" query:"format" validate:"omitempty,oneof=json xlsx"`
}

// CacheInvalidateRequest drops one workbook from the dataset cache, or the
// whole cache when FileID is empty
type CacheInvalidateRequest struct {
	FileID string `json:"file_id" validate:"omitempty,len=64,hexadecimal"`
}

// CacheInvalidateResponse reports how many cached datasets were removed
type CacheInvalidateResponse struct {
	Removed   int `json:"removed"`
	Remaining int `json:"remaining"`
}

// DatasetFile describes one workbook of the data directory
type DatasetFile struct {
	Name     string             `json:"name"`
	Kind     domain.DatasetKind `json:"kind,omitempty"`
	Year     int                `json:"year,omitempty"`
	Size     int64              `json:"size"`
	Modified time.Time          `json:"modified"`
}

// DatasetListResponse is the body of GET /api/v1/datasets
type DatasetListResponse struct {
	Files []DatasetFile `json:"files"`
	// Unclassified lists workbooks whose dataset could not be told
	Unclassified []string `json:"unclassified"`
}

// HealthResponse is the body of GET /healthz
type HealthResponse struct {
	Status       string                `json:"status"`
	Version      contracts.VersionInfo `json:"version"`
	CacheEntries int                   `json:"cache_entries"`
	DataDir      string                `json:"data_dir"`
}
