// Package logctx provides context-based logger injection and extraction.
//
// The experiment driver enriches the logger as it descends into a cell, so
// anything logged while measuring carries the cell coordinates:
//
//	ctx = logctx.WithInt(ctx, "n", n)
//	ctx = logctx.WithStr(ctx, "array_type", typ.String())
//	logctx.FromContext(ctx).Debug().Msg("prefix ready")
package logctx

import (
	"context"

	"github.com/eunmann/mergebench/pkg/logging"
	"github.com/rs/zerolog"
)

// loggerKey is the private key type for storing loggers in context.
type loggerKey struct{}

// WithLogger returns a new context with the given logger attached.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext extracts the logger from the context. If the context is nil
// or does not contain a logger, returns the global logger from pkg/logging.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
			return logger
		}
	}
	return *logging.L()
}

// WithStr returns a new context with a logger that has the specified string field added.
func WithStr(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, logger)
}

// WithInt returns a new context with a logger that has the specified int field added.
func WithInt(ctx context.Context, key string, value int) context.Context {
	logger := FromContext(ctx).With().Int(key, value).Logger()
	return WithLogger(ctx, logger)
}

// WithPhase returns a new context whose logger carries the phase field.
func WithPhase(ctx context.Context, phase string) context.Context {
	return WithStr(ctx, "phase", phase)
}
