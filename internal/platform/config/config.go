// Package config loads application configuration from an optional .env file and the environment.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ServerConfig holds the admin HTTP server settings.
type ServerConfig struct {
	Port string
	Env  string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// BackendConfig holds the remote REST API settings.
type BackendConfig struct {
	BaseURL   string        // e.g. "http://localhost:3000/api"
	Timeout   time.Duration // whole-request timeout of the outbound HTTP client
	JWTSecret string        // empty disables the service token
	JWTTTL    time.Duration
	RateLimit int // outbound calls per minute, 0 disables
}

// RedisConfig holds Redis connection settings. An empty Host disables Redis.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Addr returns host:port.
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// StateConfig holds the lifetimes of form submissions and list snapshots.
type StateConfig struct {
	SubmissionTTL time.Duration
	SnapshotTTL   time.Duration
}

// AdminConfig holds the optional basic-auth credentials of the admin UI.
type AdminConfig struct {
	User         string
	PasswordHash string // bcrypt
}

// DevBackendConfig holds the development backend settings.
type DevBackendConfig struct {
	Port          string
	DBDriver      string // "sqlite" or "postgres"
	DBDSN         string
	RunMigrations bool
}

// Config holds all configuration.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Backend    BackendConfig
	Redis      RedisConfig
	State      StateConfig
	Admin      AdminConfig
	DevBackend DevBackendConfig
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Load reads .env (if present) and the environment.
// A missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_PORT", "8080")

	v.SetDefault("BACKEND_BASE_URL", "http://localhost:3000/api")
	v.SetDefault("BACKEND_TIMEOUT", 10*time.Second)
	v.SetDefault("BACKEND_JWT_SECRET", "")
	v.SetDefault("BACKEND_JWT_TTL", 5*time.Minute)
	v.SetDefault("BACKEND_RATE_LIMIT", 0)

	v.SetDefault("REDIS_HOST", "")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")

	v.SetDefault("SUBMISSION_TTL", 30*time.Minute)
	v.SetDefault("SNAPSHOT_TTL", 30*time.Minute)

	v.SetDefault("ADMIN_USER", "")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")

	v.SetDefault("DEVBACKEND_PORT", "3000")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "empresas.db")
	v.SetDefault("RUN_MIGRATIONS", true)
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("SERVER_PORT"),
			Env:  v.GetString("APP_ENV"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Backend: BackendConfig{
			BaseURL:   v.GetString("BACKEND_BASE_URL"),
			Timeout:   v.GetDuration("BACKEND_TIMEOUT"),
			JWTSecret: v.GetString("BACKEND_JWT_SECRET"),
			JWTTTL:    v.GetDuration("BACKEND_JWT_TTL"),
			RateLimit: v.GetInt("BACKEND_RATE_LIMIT"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		State: StateConfig{
			SubmissionTTL: v.GetDuration("SUBMISSION_TTL"),
			SnapshotTTL:   v.GetDuration("SNAPSHOT_TTL"),
		},
		Admin: AdminConfig{
			User:         v.GetString("ADMIN_USER"),
			PasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		},
		DevBackend: DevBackendConfig{
			Port:          v.GetString("DEVBACKEND_PORT"),
			DBDriver:      v.GetString("DB_DRIVER"),
			DBDSN:         v.GetString("DB_DSN"),
			RunMigrations: v.GetBool("RUN_MIGRATIONS"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
