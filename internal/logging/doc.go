// Package logging builds the slog loggers used across subburn.
//
// It provides a compact console handler for interactive use, a JSON handler
// for machine consumption, helpers for attaching standardized context fields
// (item, stage, correlation id), and a no-op logger for tests.
package logging
