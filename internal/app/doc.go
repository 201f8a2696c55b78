// Package app wires the report server together and manages its lifecycle.
//
// NewApplication resolves paths, sets up OpenTelemetry, builds the shared
// dataset cache and the report service, and mounts the HTTP router. Run
// serves until SIGINT or SIGTERM and then shuts down gracefully:
//
//	- in-flight requests are drained within Server.ShutdownTimeout
//	- tracer and meter providers are flushed
//
// Initialization errors are returned to the caller. The package never calls
// os.Exit, so cmd/web decides how to exit.
package app
