package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// ctxKey guards the logger slot in a context. An unexported struct
// type cannot collide with keys set by other packages.
type ctxKey struct{}

// WithLogger attaches logger to ctx. Batch commands call this once so
// the runner's workers share the command's logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger attached by WithLogger, falling back
// to the package default when none is present.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}
