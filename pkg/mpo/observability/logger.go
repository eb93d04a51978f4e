// Package observability provides structured logging, metrics, and
// tracing for mpo message routing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds routing context to a logger. Returns a new logger
// with signal, slot, and link_id fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "Ping::output", "Pong::input", linkID)
//	enriched.Debug("dispatching") // includes signal, slot, link_id
func EnrichLogger(logger *slog.Logger, signal, slot, linkID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("signal", signal),
		slog.String("slot", slot),
		slog.String("link_id", linkID),
	)
}

// LogConnect logs the creation of a link.
func LogConnect(logger *slog.Logger, signal, slot, linkID, mode string) {
	if logger == nil {
		return
	}
	logger.Debug("link connected",
		slog.String("signal", signal),
		slog.String("slot", slot),
		slog.String("link_id", linkID),
		slog.String("mode", mode),
	)
}

// LogDisconnect logs the teardown of a link.
func LogDisconnect(logger *slog.Logger, signal, slot, linkID string, purged int) {
	if logger == nil {
		return
	}
	logger.Debug("link disconnected",
		slog.String("signal", signal),
		slog.String("slot", slot),
		slog.String("link_id", linkID),
		slog.Int("purged_entries", purged),
	)
}

// LogEmit logs a message emission.
func LogEmit(logger *slog.Logger, signal, msgType string, fanout int) {
	if logger == nil {
		return
	}
	logger.Debug("message emitted",
		slog.String("signal", signal),
		slog.String("msg_type", msgType),
		slog.Int("fanout", fanout),
	)
}

// LogDispatchDrop logs a message silently dropped by the dynamic
// dispatch path because its runtime type was incompatible with the
// slot's accepted type.
func LogDispatchDrop(logger *slog.Logger, slot, msgType, acceptedType string) {
	if logger == nil {
		return
	}
	logger.Debug("incompatible message dropped",
		slog.String("slot", slot),
		slog.String("msg_type", msgType),
		slog.String("accepted_type", acceptedType),
	)
}

// LogActionRegistered logs the registration of an owning action.
func LogActionRegistered(logger *slog.Logger, action, actionType string) {
	if logger == nil {
		return
	}
	logger.Debug("action registered",
		slog.String("action", action),
		slog.String("action_type", actionType),
	)
}

// TimedOperation measures the duration of an operation. Returns a
// function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
