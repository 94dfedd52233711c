// Package logger provides structured logging functionality for the
// application using Go's standard library log/slog package. Production
// runs emit JSON to stdout; local runs can opt into a colorized console
// format. Loggers travel on the context so request- and run-scoped
// attributes survive across package boundaries.
package logger
