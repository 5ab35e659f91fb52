package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/spec-kit/kit-service/internal/bmi"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Kit       KitConfig
	BMI       BMIConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines the catalog operator credentials and token settings.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	AdminEmail            string
	AdminPasswordHash     string
}

// RateLimitConfig bounds form submissions per client.
type RateLimitConfig struct {
	Requests      int
	WindowSeconds int
}

// KitConfig points at the reward kit catalog seed and cache.
type KitConfig struct {
	SeedFile        string
	SeedOnStartup   bool
	CacheTTLSeconds int
}

// BMIConfig holds the accepted measurement ranges.
type BMIConfig struct {
	MinMassKg   float64
	MaxMassKg   float64
	MinHeightCm float64
	MaxHeightCm float64
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "kit-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 15),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			AdminEmail:            os.Getenv("AUTH_ADMIN_EMAIL"),
			AdminPasswordHash:     os.Getenv("AUTH_ADMIN_PASSWORD_HASH"),
		},
		RateLimit: RateLimitConfig{
			Requests:      getEnvAsInt("RATE_LIMIT_SUBMISSIONS", 5),
			WindowSeconds: getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		},
		Kit: KitConfig{
			SeedFile:        getEnv("KIT_SEED_FILE", "seeds/kit_items.yaml"),
			SeedOnStartup:   getEnvAsBool("KIT_SEED_ON_STARTUP", true),
			CacheTTLSeconds: getEnvAsInt("KIT_CACHE_TTL_SECONDS", 300),
		},
		BMI: BMIConfig{
			MinMassKg:   getEnvAsFloat("BMI_MIN_MASS_KG", 30),
			MaxMassKg:   getEnvAsFloat("BMI_MAX_MASS_KG", 300),
			MinHeightCm: getEnvAsFloat("BMI_MIN_HEIGHT_CM", 100),
			MaxHeightCm: getEnvAsFloat("BMI_MAX_HEIGHT_CM", 250),
		},
	}

	if cfg.BMI.MinMassKg > cfg.BMI.MaxMassKg || cfg.BMI.MinHeightCm > cfg.BMI.MaxHeightCm {
		return nil, fmt.Errorf("invalid BMI limits: min must not exceed max")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Window returns the rate limit window.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// Enabled reports whether submissions are rate limited at all.
func (r RateLimitConfig) Enabled() bool {
	return r.Requests > 0 && r.WindowSeconds > 0
}

// Limits converts the configured ranges for the calculator.
func (b BMIConfig) Limits() bmi.Limits {
	return bmi.Limits{
		MinMassKg:   b.MinMassKg,
		MaxMassKg:   b.MaxMassKg,
		MinHeightCm: b.MinHeightCm,
		MaxHeightCm: b.MaxHeightCm,
	}
}

// CacheTTL returns how long the kit catalog stays cached.
func (k KitConfig) CacheTTL() time.Duration {
	if k.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(k.CacheTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
