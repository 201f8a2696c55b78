// Package http serves the read-only report API over the workbooks already
// present in the data directory.
//
// Routes:
//
//	GET  /healthz                   liveness, version and cache size
//	GET  /metrics                   Prometheus metrics
//	GET  /api/v1/reports            ?year=2025&period=TW+II[&format=xlsx]
//	GET  /api/v1/datasets           workbooks found in the data directory
//	POST /api/v1/cache/invalidate   {"file_id": "..."} or empty to purge
//
// Handlers stay thin: they parse and validate the query with
// middleware.Validator, call the report service and render the result.
// Every error goes through errors.ErrorHandler and leaves as RFC 7807
// problem details, so a workbook without a required column becomes a 422
// naming the dataset, the missing field and the columns the sheet has.
package http
