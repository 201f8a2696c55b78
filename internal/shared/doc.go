// Package shared holds helpers used across the report packages that do not
// belong to a single layer.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// log output and workbook fixtures written with excelize, so that loader,
// service and HTTP tests can build small spreadsheets in a temp directory.
package shared
