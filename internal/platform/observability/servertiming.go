// Package observability wraps Server-Timing and OpenTelemetry helpers used around backend calls.
package observability

import (
	"context"
	"net/http"

	servertiming "github.com/mitchellh/go-server-timing"
)

// ServerTimingMetric wraps the server-timing library's Metric type.
type ServerTimingMetric struct {
	metric *servertiming.Metric
}

// Stop stops the timing metric.
func (m *ServerTimingMetric) Stop() {
	if m != nil && m.metric != nil {
		m.metric.Stop()
	}
}

// StartServerTiming starts a metric named name with the given description.
// Without timing info in ctx it returns a no-op metric.
func StartServerTiming(ctx context.Context, name, description string) *ServerTimingMetric {
	timing := servertiming.FromContext(ctx)
	if timing == nil {
		return &ServerTimingMetric{}
	}
	return &ServerTimingMetric{
		metric: timing.NewMetric(name).WithDesc(description).Start(),
	}
}

// WithServerTiming installs the Server-Timing header writer in front of h.
func WithServerTiming(h http.Handler) http.Handler {
	return servertiming.Middleware(h, nil)
}
