package config

import "time"

// Application constants
const (
	AppName = "OSS Report"

	// Environment prefix for envconfig
	EnvPrefix = "OSS"

	// Config file override
	ConfigFileEnv = "OSS_CONFIG_FILE"

	// File Paths (relative to the base directory)
	DefaultDataDir   = "data"
	DefaultOutputDir = "reports"
	DefaultLogsDir   = "logs"

	// Report defaults
	DefaultGoverningAuthority = "Gubernur"
	DefaultTopN               = 10

	// Cache Settings
	DefaultCacheSize = 32

	// Server
	DefaultPort            = 8080
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultReportRPS       = 2.0
	DefaultReportBurst     = 4

	// Upper bound for building one report over HTTP
	ReportGenerationTimeout = 5 * time.Minute

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Workbook extensions accepted by discovery
	WorkbookPattern = "*.xlsx"
)
