package http

import (
	"context"

	"ossreport/internal/files"
	"ossreport/internal/services"
	"ossreport/pkg/contracts/domain"
)

// ReportServiceInterface is what the handlers need from services.ReportService
type ReportServiceInterface interface {
	Generate(ctx context.Context, req services.ReportRequest) (*domain.Report, error)
	DiscoverSources(ctx context.Context, dir string, year int) (services.Sources, error)
	DiscoverHistory(ctx context.Context, dir string, period domain.PeriodSpec) services.Sources
	ListWorkbooks(ctx context.Context, dir string) ([]files.FileInfo, error)
}

// DatasetCache is the cache control surface exposed over HTTP
type DatasetCache interface {
	Invalidate(fileID string) int
	Purge() int
	Len() int
}
