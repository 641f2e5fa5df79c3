package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "127.0.0.1:50051", cfg.GRPCAddr)
	assert.Equal(t, DriverFile, cfg.StoreDriver)
	assert.Equal(t, "appointments", cfg.StoreKey)
	assert.Equal(t, time.Monday, cfg.WeekStart)
	assert.Equal(t, []string{"Dr. Ali", "Dr. Asma", "Dr. Madiha"}, cfg.Catalog.Doctors)
	assert.Len(t, cfg.Catalog.Treatments, 5)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("WEEK_START", "Sunday")
	t.Setenv("DOCTORS", " Dr. House , ,Dr. Grey")
	t.Setenv("TREATMENTS", "Consult,All")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, DriverRedis, cfg.StoreDriver)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, time.Sunday, cfg.WeekStart)
	assert.Equal(t, []string{"Dr. House", "Dr. Grey"}, cfg.Catalog.Doctors)
	assert.Equal(t, []string{"Consult"}, cfg.Catalog.Treatments, "the filter sentinel is not a treatment")
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "s3"}},
		{"postgres without url", map[string]string{"STORE_DRIVER": "postgres"}},
		{"bad week start", map[string]string{"WEEK_START": "someday"}},
		{"no doctors", map[string]string{"DOCTORS": " , "}},
		{"no treatments", map[string]string{"TREATMENTS": ","}},
		{"zero rate", map[string]string{"RATE_LIMIT_RPS": "0"}},
		{"negative rate", map[string]string{"RATE_LIMIT_RPS": "-1"}},
		{"zero burst", map[string]string{"RATE_LIMIT_BURST": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadPostgres(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/clinic")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost:5432/clinic", cfg.DatabaseURL)
}
