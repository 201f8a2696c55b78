// Package services implements the report pipeline behind both binaries.
//
// ReportService loads the dataset workbooks of a request concurrently,
// resolving each sheet's columns against the keyword dictionaries and
// caching the normalized records by file content. It then aggregates the
// records into the report sections and the quarter-on-quarter and
// year-on-year comparisons.
//
// # Errors
//
// Errors carry an AppError type the HTTP layer maps to a status:
//
//	- VALIDATION for an invalid period or an empty request
//	- NOT_FOUND when no workbook matches the requested year
//	- SCHEMA when a required column is missing; the cause is a
//	  SchemaMismatchError whose Hint lists the columns the sheet has
//	- STORAGE for unreadable files
//
// # Usage
//
//	svc, err := services.NewReportService(cfg, services.ReportServiceOptions{Logger: logger})
//	sources, err := svc.DiscoverSources(ctx, dataDir, 2025)
//	period := domain.Quarter(2025, 2)
//	report, err := svc.Generate(ctx, services.ReportRequest{
//	    Period:  period,
//	    Sources: sources,
//	    History: svc.DiscoverHistory(ctx, dataDir, period),
//	})
package services
