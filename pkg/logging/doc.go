// Package logging provides structured logging configuration for the
// service.
//
// It wraps log/slog so every component logs through the same handler
// setup. Components accept a *slog.Logger in their constructor (or via a
// functional option) and fall back to logging.Nop() when none is given.
//
// Two output formats are supported: human-readable text for development
// and JSON for log aggregation.
package logging
