package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	// AccessSecret signs access tokens; RefreshSecret signs refresh tokens.
	// They must differ so one token class can never stand in for the other.
	AccessSecret  string
	RefreshSecret string

	// AccessTTL is the access-token lifetime (default 30m). Set via ACCESS_TOKEN_TTL.
	AccessTTL time.Duration
	// RefreshTTL is the refresh-token lifetime (default 168h = 7 days). Set via REFRESH_TOKEN_TTL.
	RefreshTTL time.Duration

	// ExchangeAPIKey and ExchangeBaseURL configure the currency-rate provider.
	ExchangeAPIKey  string
	ExchangeBaseURL string

	// Env is "dev" (default) or "prod". When "prod", the JWT secrets must be set
	// and not the defaults.
	Env string

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// When empty, the API listens with plain HTTP.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// CORSAllowedOrigins is a list of origins allowed for CORS.
	// Set via CORS_ALLOWED_ORIGINS (comma-separated). When empty, no CORS headers are sent.
	CORSAllowedOrigins []string
}

const (
	defaultAccessSecret  = "dev-access-secret"
	defaultRefreshSecret = "dev-refresh-secret"
)

func Load() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "expensedb"),
		DBUser: getEnv("DB_USER", "expenseuser"),
		DBPass: getEnv("DB_PASS", "expensepass"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		AccessSecret:  getEnv("ACCESS_TOKEN_SECRET", defaultAccessSecret),
		RefreshSecret: getEnv("REFRESH_TOKEN_SECRET", defaultRefreshSecret),

		AccessTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 30*time.Minute),
		RefreshTTL: getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		ExchangeAPIKey:  getEnv("EXCHANGE_RATE_API_KEY", ""),
		ExchangeBaseURL: getEnv("EXCHANGE_RATE_BASE_URL", "https://v6.exchangerate-api.com/v6"),

		Env: getEnv("ENV", "dev"),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
}

// Validate rejects configurations that must never reach production: default
// signing secrets when ENV=prod, or access and refresh secrets that collide.
func (c Config) Validate() error {
	if c.AccessSecret == c.RefreshSecret {
		return fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if c.Env == "prod" {
		if c.AccessSecret == defaultAccessSecret || c.RefreshSecret == defaultRefreshSecret {
			return fmt.Errorf("default JWT secrets are not allowed when ENV=prod")
		}
	}
	return nil
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
