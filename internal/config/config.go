package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"clinic-scheduler/internal/model"
	"clinic-scheduler/internal/schedule"
)

const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	Env            string  `mapstructure:"ENV"`
	LogLevel       string  `mapstructure:"LOG_LEVEL"`
	GRPCAddr       string  `mapstructure:"GRPC_ADDR"`
	WebAddr        string  `mapstructure:"WEB_ADDR"`
	StoreDriver    string  `mapstructure:"STORE_DRIVER"`
	StoreKey       string  `mapstructure:"STORE_KEY"`
	DataDir        string  `mapstructure:"DATA_DIR"`
	RedisAddr      string  `mapstructure:"REDIS_ADDR"`
	RedisPassword  string  `mapstructure:"REDIS_PASSWORD"`
	RedisDB        int     `mapstructure:"REDIS_DB"`
	RedisPrefix    string  `mapstructure:"REDIS_PREFIX"`
	DatabaseURL    string  `mapstructure:"DATABASE_URL"`
	WeekStartName  string  `mapstructure:"WEEK_START"`
	DoctorList     string  `mapstructure:"DOCTORS"`
	TreatmentList  string  `mapstructure:"TREATMENTS"`
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	WeekStart time.Weekday  `mapstructure:"-"`
	Catalog   model.Catalog `mapstructure:"-"`
}

var keys = []string{
	"ENV", "LOG_LEVEL", "GRPC_ADDR", "WEB_ADDR",
	"STORE_DRIVER", "STORE_KEY", "DATA_DIR",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_PREFIX",
	"DATABASE_URL", "WEEK_START", "DOCTORS", "TREATMENTS",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	defaults := model.DefaultCatalog()
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GRPC_ADDR", "127.0.0.1:50051")
	v.SetDefault("WEB_ADDR", "127.0.0.1:8080")
	v.SetDefault("STORE_DRIVER", DriverFile)
	v.SetDefault("STORE_KEY", "appointments")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PREFIX", "clinic:")
	v.SetDefault("WEEK_START", "monday")
	v.SetDefault("DOCTORS", strings.Join(defaults.Doctors, ","))
	v.SetDefault("TREATMENTS", strings.Join(defaults.Treatments, ","))
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverFile, DriverMemory, DriverRedis:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.StoreKey == "" {
		return fmt.Errorf("STORE_KEY must not be empty")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive, got %v", c.RateLimitRPS)
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive, got %d", c.RateLimitBurst)
	}

	ws, err := schedule.ParseWeekday(c.WeekStartName)
	if err != nil {
		return fmt.Errorf("WEEK_START: %w", err)
	}
	c.WeekStart = ws

	c.Catalog = model.Catalog{
		Doctors:    splitList(c.DoctorList),
		Treatments: splitList(c.TreatmentList),
	}
	if len(c.Catalog.Doctors) == 0 {
		return fmt.Errorf("DOCTORS must list at least one doctor")
	}
	if len(c.Catalog.Treatments) == 0 {
		return fmt.Errorf("TREATMENTS must list at least one treatment")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" && p != model.All {
			out = append(out, p)
		}
	}
	return out
}
