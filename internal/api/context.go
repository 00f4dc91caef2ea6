package api

import (
	"context"

	"subnetcalc/internal/observability"
)

// Request IDs live in the context under the observability package's key
// so request-scoped logs pick them up without extra plumbing.

// WithRequestID stores the provided request ID in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return observability.WithRequestID(ctx, requestID)
}

// RequestIDFromContext retrieves the request ID from context if present.
func RequestIDFromContext(ctx context.Context) string {
	return observability.RequestIDFromContext(ctx)
}

func appendRequestID(ctx context.Context, attrs []any) []any {
	if rid := RequestIDFromContext(ctx); rid != "" {
		attrs = append(attrs, "request_id", rid)
	}
	return attrs
}
