package org

import (
	"context"
	"log/slog"
)

// ctxKey is a private type to prevent collisions with other context keys.
type ctxKey struct{}

// WithContext stores the org context in the request context.
func WithContext(ctx context.Context, oc Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, oc)
}

// FromContext retrieves the org context from the request context.
// Returns the root context and false if none is set.
func FromContext(ctx context.Context) (Context, bool) {
	oc, ok := ctx.Value(ctxKey{}).(Context)
	if !ok {
		return RootContext(), false
	}
	return oc, true
}

// LoggerExtractor returns a context extractor for the logger that adds the
// current org id (or "root") to every log record.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		oc, ok := FromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		if oc.IsRoot() {
			return slog.String("org_id", "root"), true
		}
		return slog.String("org_id", oc.ID.String()), true
	}
}
