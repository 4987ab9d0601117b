package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("matchday/internal/interfaces/httpapi")

// inertSpan is handed to callers whose step should not export a span of its
// own; End on it is a no-op.
var inertSpan = trace.SpanFromContext(context.Background())

// startSpan opens a child span for handler operations, the only granularity
// this facade exports. Middleware and the write helpers call it too but only
// ride the request span: without a valid parent (a filtered route like
// /healthz) or outside a handler operation, no standalone root is created.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, inertSpan
	}
	if !isHandlerOp(name) {
		return ctx, inertSpan
	}
	return apiTracer.Start(ctx, name)
}

func isHandlerOp(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
