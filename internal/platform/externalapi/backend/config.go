// Package backend はEmpresa/Proveedor REST APIのクライアントを提供します。
package backend

import (
	"time"

	"empresas_admin/internal/platform/config"
)

// Config holds configuration for the backend API client.
type Config struct {
	BaseURL   string        // e.g. "http://localhost:3000/api"
	Timeout   time.Duration // HTTP request timeout
	JWTSecret string        // empty disables the Authorization header
	JWTTTL    time.Duration
	RateLimit int // calls per minute, 0 disables
}

// ConfigFrom converts the application configuration.
func ConfigFrom(cfg config.BackendConfig) Config {
	return Config{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		JWTSecret: cfg.JWTSecret,
		JWTTTL:    cfg.JWTTTL,
		RateLimit: cfg.RateLimit,
	}
}
