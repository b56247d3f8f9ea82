// Package logging defines the minimal structured-logging interface used
// across the portal. Implementations can wrap slog, zap, zerolog, etc.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "upload started", "filename", name, "size", size)
type Logger interface {
	// Debug logs fine-grained diagnostic detail.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Noop returns a Logger that discards everything. Handy default for tests
// and for components where the caller did not supply a logger.
func Noop() Logger { return noop{} }

type noop struct{}

func (noop) Debug(context.Context, string, ...any) {}
func (noop) Info(context.Context, string, ...any)  {}
func (noop) Warn(context.Context, string, ...any)  {}
func (noop) Error(context.Context, string, ...any) {}
func (n noop) With(...any) Logger                  { return n }
