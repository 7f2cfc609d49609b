// Package logging wires zap behind the logr interface used across the
// optimizer, plus context helpers for passing the logger down the pipeline.
package logging

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Verbosity raises the logr V-level threshold;
// development switches to the human-oriented console encoding.
func New(verbosity int, development bool) logr.Logger {
	var zc zap.Config
	if development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	// zapr maps logr V-levels onto negative zap levels.
	zc.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	zl, err := zc.Build()
	if err != nil {
		zl = zap.NewNop()
	}
	return zapr.NewLogger(zl)
}

type contextKey struct{}

// IntoContext returns a context carrying the logger.
func IntoContext(ctx context.Context, log logr.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, log)
}

// FromContext retrieves the logger stored by IntoContext, or a discarding
// logger when none is present.
func FromContext(ctx context.Context) logr.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(contextKey{}).(logr.Logger); ok {
			return log
		}
	}
	return logr.Discard()
}
