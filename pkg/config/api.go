package config

import (
	"errors"
	"time"
)

// APIConfig holds runtime configuration for the HR API service.
type APIConfig struct {
	Environment        string
	Addr               string
	DatabaseURL        string
	MigrationsDir      string
	JWTSecret          string
	TokenTTL           time.Duration
	RateLimitRedisAddr string
	RateLimitRedisPass string
	RateLimitRedisDB   int
}

// ErrMissingJWTSecret signals that the token signing key is not configured.
var ErrMissingJWTSecret = errors.New("config: JWT_SECRET environment variable is not defined")

// LoadAPIConfig constructs an APIConfig from environment variables. The JWT
// signing secret has no default: its absence is a startup error so the
// process fails fast instead of issuing unverifiable tokens.
func LoadAPIConfig() (APIConfig, error) {
	cfg := APIConfig{
		Environment:        GetString("APP_ENV", "development"),
		Addr:               GetString("API_ADDR", ":4000"),
		DatabaseURL:        GetString("DATABASE_URL", "postgres://projetorh:projetorh@db:5432/projetorh?sslmode=disable"),
		MigrationsDir:      GetString("DB_MIGRATIONS_DIR", "./db/migrations"),
		JWTSecret:          GetString("JWT_SECRET", ""),
		TokenTTL:           GetDuration("JWT_EXPIRES_IN", 24*time.Hour),
		RateLimitRedisAddr: GetString("RATE_LIMIT_REDIS_ADDR", ""),
		RateLimitRedisPass: GetString("RATE_LIMIT_REDIS_PASSWORD", ""),
		RateLimitRedisDB:   GetInt("RATE_LIMIT_REDIS_DB", 0),
	}
	if cfg.JWTSecret == "" {
		return APIConfig{}, ErrMissingJWTSecret
	}
	return cfg, nil
}
