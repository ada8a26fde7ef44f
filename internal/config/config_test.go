package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "CORS_ALLOW_ORIGINS", "CATALOG_CACHE_TTL", "KAFKA_BROKERS", "RESET_DB", "REDIS_DB"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.Equal(t, time.Minute, cfg.CatalogCacheTTL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.ResetDB)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,,")
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("RESET_DB", "true")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.CatalogCacheTTL)
	assert.True(t, cfg.ResetDB)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("CATALOG_CACHE_TTL", "soon")
	t.Setenv("REDIS_DB", "two")
	t.Setenv("RESET_DB", "maybe")

	cfg := Load()

	assert.Equal(t, time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.False(t, cfg.ResetDB)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		secret  string
		wantErr error
	}{
		{name: "development with default secret", env: "development", secret: DefaultJWTSecret},
		{name: "production with default secret", env: "production", secret: DefaultJWTSecret, wantErr: ErrDefaultJWTSecret},
		{name: "production with unset secret", env: "Production", secret: "", wantErr: ErrDefaultJWTSecret},
		{name: "production with real secret", env: "production", secret: "s3cr3t-from-vault"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.env, JWTSecret: tt.secret}
			if tt.wantErr != nil {
				assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.ErrorIs(t, cfg.Validate(), ErrDefaultJWTSecret)
}
