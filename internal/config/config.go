package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable; the grouped sub-configs (cache, rate limit,
// redis, events) are loaded by their own files in this package.
type Config struct {
	Env       string // application environment (e.g. "dev", "prod")
	Port      string // HTTP port to listen on
	LogLevel  string // debug, info, warn or error
	LogFormat string // json or text

	StoreDriver string // memory, mysql or postgres
	DBUser      string // MySQL user
	DBPass      string // MySQL password (optional)
	DBHost      string // MySQL host
	DBPort      string // MySQL port
	DBName      string // MySQL database name
	DatabaseURL string // PostgreSQL connection string

	QRSecret  string // secret used to sign QR tokens
	QRBaseURL string // base of the customer console URL encoded into QR codes

	TickUnit time.Duration // base unit for the reconciliation loop intervals

	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Events    EventsConfig
}

// Load reads an optional .env file from the working directory and then the
// environment.  Variables already set in the environment win over the
// file.  Missing required values are collected and reported together.
func Load() (Config, error) {
	_ = godotenv.Load() // a missing .env is normal outside development

	l := &loader{}
	cfg := Config{
		Env:         envStr("APP_ENV", "dev"),
		Port:        envStr("APP_PORT", "8080"),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		LogFormat:   envStr("LOG_FORMAT", "json"),
		StoreDriver: strings.ToLower(envStr("STORE_DRIVER", DriverMemory)),
		QRSecret:    envStr("QR_SECRET", ""),
		QRBaseURL:   strings.TrimRight(envStr("QR_BASE_URL", "http://localhost:3000"), "/"),
		TickUnit:    envDur("TICK_UNIT", time.Second),
		Redis:       LoadRedisConfig(),
		Cache:       LoadCacheConfig(),
		RateLimit:   LoadRateLimitConfig(),
		Events:      LoadEventsConfig(),
	}

	switch cfg.StoreDriver {
	case DriverMemory:
	case DriverMySQL:
		cfg.DBUser = l.must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS") // empty password allowed
		cfg.DBHost = l.must("DB_HOST")
		cfg.DBPort = envStr("DB_PORT", "3306")
		cfg.DBName = l.must("DB_NAME")
	case DriverPostgres:
		cfg.DatabaseURL = l.must("DATABASE_URL")
	default:
		l.errs = append(l.errs, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver))
	}

	if cfg.Env == "prod" && cfg.QRSecret == "" {
		l.errs = append(l.errs, errors.New("QR_SECRET is required when APP_ENV=prod"))
	}
	if cfg.QRSecret == "" {
		cfg.QRSecret = "dev-qr-secret"
	}
	if cfg.TickUnit <= 0 {
		cfg.TickUnit = time.Second
	}
	return cfg, errors.Join(l.errs...)
}

// loader accumulates missing-variable errors so that one run reports
// every problem instead of the first.
type loader struct {
	errs []error
}

// must retrieves the value of a required environment variable.
func (l *loader) must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		l.errs = append(l.errs, fmt.Errorf("missing required env var: %s", key))
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
