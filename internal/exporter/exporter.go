package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ossreport/internal/config"
	"ossreport/internal/infrastructure"
	"ossreport/pkg/contracts/domain"
)

// Exporter writes a report in one or more formats into the output directory
type Exporter struct {
	paths  *config.Paths
	csv    *CSVWriter
	xlsx   *XLSXWriter
	logger *slog.Logger
}

// New creates an exporter writing below paths.OutputDir
func New(paths *config.Paths, logger *slog.Logger) *Exporter {
	return &Exporter{
		paths:  paths,
		csv:    NewCSVWriter(paths, logger),
		xlsx:   NewXLSXWriter(logger),
		logger: infrastructure.WithComponent(logger, "exporter"),
	}
}

// BaseName returns the file name stem of a report, e.g. "laporan_oss_2025-Q2"
func BaseName(r *domain.Report) string {
	return "laporan_oss_" + r.Period.String()
}

// Export writes r once per format and returns the files written. CSV output
// is one file per table in a directory named after the report.
func (e *Exporter) Export(r *domain.Report, formats []domain.ReportFormat) ([]string, error) {
	tables := ReportTables(r)
	base := BaseName(r)

	var written []string
	for _, format := range formats {
		switch format {
		case domain.ReportFormatCSV:
			for _, t := range tables {
				path, err := e.csv.WriteTable(filepath.Join(base, csvFileName(t.Name)), t)
				if err != nil {
					return written, fmt.Errorf("failed to export %s: %w", t.Name, err)
				}
				written = append(written, path)
			}
		case domain.ReportFormatXLSX:
			path := e.paths.GetReportPath(base + ".xlsx")
			if err := e.xlsx.WriteFile(path, tables); err != nil {
				return written, err
			}
			written = append(written, path)
		case domain.ReportFormatJSON:
			path, err := e.writeJSON(base+".json", r)
			if err != nil {
				return written, err
			}
			written = append(written, path)
		default:
			return written, fmt.Errorf("unsupported report format %q", format)
		}
	}

	e.logger.Info("report exported",
		slog.String("report_id", r.ID),
		slog.String("period", r.Period.String()),
		slog.Int("files", len(written)))
	return written, nil
}

func (e *Exporter) writeJSON(name string, r *domain.Report) (string, error) {
	path := e.paths.GetReportPath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, r); err != nil {
		return "", err
	}
	return path, f.Close()
}

func csvFileName(table string) string {
	return strings.ReplaceAll(table, ".", "_") + ".csv"
}
