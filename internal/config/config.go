package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTSecret is the development signing secret used when JWT_SECRET is unset.
const DefaultJWTSecret = "change-me"

// ErrDefaultJWTSecret is returned by Validate for a production config still
// signing with DefaultJWTSecret.
var ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set in production")

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServiceName string
	ServerPort  string
	Environment string

	DBDriver    string
	DatabaseDSN string
	ResetDB     bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret string

	LogLevel  string
	LogFormat string

	CORSAllowOrigins []string
	CatalogCacheTTL  time.Duration

	KafkaBrokers     []string
	KafkaChanceTopic string

	TracingEndpoint string
	SwaggerHost     string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServiceName:      getEnv("SERVICE_NAME", "raspadinha"),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		Environment:      getEnv("APP_ENV", "development"),
		DBDriver:         getEnv("DB_DRIVER", "postgres"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=raspadinha port=5432 sslmode=disable"),
		ResetDB:          getEnvBool("RESET_DB", false),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        getEnv("JWT_SECRET", DefaultJWTSecret),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		CORSAllowOrigins: getEnvList("CORS_ALLOW_ORIGINS", []string{"*"}),
		CatalogCacheTTL:  getEnvDuration("CATALOG_CACHE_TTL", time.Minute),
		KafkaBrokers:     getEnvList("KAFKA_BROKERS", nil),
		KafkaChanceTopic: getEnv("KAFKA_CHANCE_TOPIC", "scratch.chance.issued"),
		TracingEndpoint:  os.Getenv("TRACING_ENDPOINT"),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),
	}
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Validate rejects settings that are only acceptable in development.
func (c *Config) Validate() error {
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		return ErrDefaultJWTSecret
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

// getEnvList splits a comma separated variable, dropping empty entries.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
