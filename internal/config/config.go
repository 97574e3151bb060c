package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/data"
)

// Config is everything the process reads from the environment, read exactly
// once at startup and passed down explicitly.
type Config struct {
	Port int

	// Database candidates, in resolve order.
	DatabaseURL string
	DBDriver    string
	DBHost      string
	DBPort      int
	DBUser      string
	DBPassword  string
	DBName      string

	ConnectBudget  time.Duration
	ConnectBackoff time.Duration

	FallbackAPIURL  string
	FallbackTimeout time.Duration

	AutotradeAPIURL  string
	AutotradeTimeout time.Duration

	RuleBookPath string
	LogDir       string
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	// Try loading .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:             envInt("PORT", 8080),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DBDriver:         envString("DB_DRIVER", "postgres"),
		DBHost:           envString("DB_HOST", "localhost"),
		DBPort:           envInt("DB_PORT", 5432),
		DBUser:           envString("DB_USER", "postgres"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           envString("DB_NAME", "trading"),
		ConnectBudget:    envDurationMs("CONNECT_BUDGET_MS", 60*time.Second),
		ConnectBackoff:   envDurationMs("CONNECT_BACKOFF_MS", 5*time.Second),
		FallbackAPIURL:   os.Getenv("FALLBACK_API_URL"),
		FallbackTimeout:  envDurationMs("FALLBACK_TIMEOUT_MS", 20*time.Second),
		AutotradeAPIURL:  os.Getenv("AUTOTRADE_API_URL"),
		AutotradeTimeout: envDurationMs("AUTOTRADE_TIMEOUT_MS", 5*time.Minute),
		RuleBookPath:     envString("RULEBOOK_DB", "rulebooks.db"),
		LogDir:           envString("LOG_DIR", "logs"),
	}
	return cfg, nil
}

// ConnectionCandidates builds the ordered list the resolver walks: the
// explicit DATABASE_URL first, then host/credential variants with
// progressively relaxed SSL, then a localhost fallback.
func (c *Config) ConnectionCandidates() []data.ConnectionConfig {
	timeout := 10 * time.Second
	var candidates []data.ConnectionConfig

	if c.DatabaseURL != "" {
		candidates = append(candidates, data.ConnectionConfig{
			Name:    "database-url",
			Driver:  c.DBDriver,
			URL:     c.DatabaseURL,
			Timeout: timeout,
		})
	}

	base := data.ConnectionConfig{
		Driver:   c.DBDriver,
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Database: c.DBName,
		Timeout:  timeout,
	}

	if c.DBDriver == "postgres" {
		require := base
		require.Name = "primary-ssl"
		require.SSLMode = "require"

		disable := base
		disable.Name = "primary-plain"
		disable.SSLMode = "disable"

		candidates = append(candidates, require, disable)

		if c.DBHost != "localhost" {
			local := base
			local.Name = "localhost"
			local.Host = "localhost"
			local.SSLMode = "disable"
			candidates = append(candidates, local)
		}
	} else {
		base.Name = "primary"
		candidates = append(candidates, base)
	}

	return candidates
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationMs(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return fallback
}
