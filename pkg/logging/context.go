// Package logging provides structured logging for the netstate engine.
package logging

import (
	"context"

	"github.com/go-logr/logr"
)

// contextKey is the type for context keys
type contextKey string

// loggerKey is the context key for the logger
const loggerKey contextKey = "logger"

// FromContext returns the logger from the context
// If no logger is found, returns the global logger
func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return GetGlobalLogger()
	}

	if logger, ok := ctx.Value(loggerKey).(*Logger); ok {
		return logger
	}

	return GetGlobalLogger()
}

// IntoContext returns a new context with the logger
func IntoContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LogrFromContext returns a logr.Logger from the context.
func LogrFromContext(ctx context.Context) logr.Logger {
	return FromContext(ctx).Logger()
}

// WithContext returns a new logger with context-specific values
func WithContext(ctx context.Context, keysAndValues ...interface{}) *Logger {
	return FromContext(ctx).WithValues(keysAndValues...)
}

// ContextWithLogger creates a new context with a named logger
func ContextWithLogger(ctx context.Context, name string) context.Context {
	logger := FromContext(ctx).WithName(name)
	return IntoContext(ctx, logger)
}

// LoggerForApply returns a logger scoped to a single apply invocation.
func LoggerForApply(requestID string) *Logger {
	return GetGlobalLogger().WithName("apply").WithValues(
		"request", requestID,
	)
}

// LoggerForInterface returns a logger with interface-specific fields.
func LoggerForInterface(name, ifaceType string) *Logger {
	return GetGlobalLogger().WithValues(
		"interface", name,
		"type", ifaceType,
	)
}

// LoggerForOVSDB returns a logger for OVSDB transaction operations.
func LoggerForOVSDB(operation string) *Logger {
	return GetGlobalLogger().WithName("ovsdb").WithValues(
		"operation", operation,
	)
}

// LoggerForCheckpoint returns a logger for checkpoint lifecycle events.
func LoggerForCheckpoint(token string) *Logger {
	return GetGlobalLogger().WithName("checkpoint").WithValues(
		"token", token,
	)
}

// LoggerForVerify returns a logger for verification retry attempts.
func LoggerForVerify(attempt, max int) *Logger {
	return GetGlobalLogger().WithName("verify").WithValues(
		"attempt", attempt,
		"max", max,
	)
}
