// Package exporter writes reports to disk and to HTTP responses.
//
// A report is first flattened into Tables (summary, one per section, one
// per comparison and a data-quality table). The tables are then written
// as:
//
// CSV: one UTF-8 file with BOM per table, in a directory named after the
// report period.
//
// XLSX: one workbook with a sheet per table.
//
// JSON: the report structure itself.
//
// Example usage:
//
//	exp := exporter.New(paths, logger)
//	files, err := exp.Export(report, []domain.ReportFormat{domain.ReportFormatXLSX})
package exporter
