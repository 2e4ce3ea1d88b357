package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name of the backend client spans.
const TracerName = "empresas_admin/backend"

// Tracer wraps an OpenTelemetry tracer with backend-call span helpers.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer from tp. A nil tp uses the global provider,
// which is a no-op until an SDK is installed.
func NewTracer(tp trace.TracerProvider) *Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracer{tracer: tp.Tracer(TracerName)}
}

// StartBackendCall starts a client span for one REST call.
func (t *Tracer) StartBackendCall(ctx context.Context, method, endpoint string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "backend "+method+" "+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.template", endpoint),
		),
	)
}

// EndBackendCall records status and error on span and ends it.
func (t *Tracer) EndBackendCall(span trace.Span, status int, err error) {
	if status > 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
