package config

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrInvalidConfig is returned when a required setting is missing or malformed.
var ErrInvalidConfig = errors.New("invalid configuration")

func (c *Config) validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: BACKEND_BASE_URL %q", ErrInvalidConfig, c.Backend.BaseURL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("%w: BACKEND_TIMEOUT must be positive", ErrInvalidConfig)
	}
	if c.Backend.RateLimit < 0 {
		return fmt.Errorf("%w: BACKEND_RATE_LIMIT must not be negative", ErrInvalidConfig)
	}
	if (c.Admin.User == "") != (c.Admin.PasswordHash == "") {
		return fmt.Errorf("%w: ADMIN_USER and ADMIN_PASSWORD_HASH must be set together", ErrInvalidConfig)
	}
	switch c.DevBackend.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: DB_DRIVER %q", ErrInvalidConfig, c.DevBackend.DBDriver)
	}
	return nil
}
