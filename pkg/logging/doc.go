// Package logging provides structured logging configuration for mockswitch.
//
// This package wraps log/slog so every component logs the same way. It
// supports configurable log levels and output formats.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("worker started", "addr", ":4280")
//
// # Reporter
//
// Operator-facing controller messages are not free-form strings. They are
// values from package messages, rendered by a Reporter through the catalog
// for the configured locale and logged at the severity each message carries.
// A Reporter for the silent locale drops everything.
//
// # Integration
//
// Components accept a *slog.Logger in their constructor or via an option.
// If no logger is provided, use logging.Nop().
package logging
