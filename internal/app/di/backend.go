// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"time"

	"empresas_admin/internal/platform/config"
	"empresas_admin/internal/platform/externalapi/backend"
	infrahttp "empresas_admin/internal/platform/http"
	jwtmw "empresas_admin/internal/platform/jwt"
	"empresas_admin/internal/platform/metrics"
	"empresas_admin/internal/platform/observability"
	"empresas_admin/internal/platform/ratelimiter"
)

// NewBackendClient creates the REST API client with the shared HTTP client.
// A service JWT is attached only when a secret is configured.
func NewBackendClient(cfg config.BackendConfig, m *metrics.Metrics) (*backend.Client, error) {
	bc := backend.ConfigFrom(cfg)
	httpClient := infrahttp.NewHTTPClient(bc.Timeout)

	opts := []backend.Option{
		backend.WithObserver(m),
		backend.WithTracer(observability.NewTracer(nil)),
	}
	if bc.JWTSecret != "" {
		opts = append(opts, backend.WithTokenSource(jwtmw.NewGenerator(bc.JWTSecret, bc.JWTTTL, backend.Subject)))
	}
	if bc.RateLimit > 0 {
		rl, err := ratelimiter.NewRateLimiter(bc.RateLimit, time.Minute)
		if err != nil {
			return nil, fmt.Errorf("backend rate limiter: %w", err)
		}
		opts = append(opts, backend.WithLimiter(rl))
	}
	return backend.NewClient(bc, httpClient, opts...), nil
}
