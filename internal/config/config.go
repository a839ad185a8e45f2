package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Runtime settings read from the environment (and .env when present).
type Config struct {
	Port          string
	DBDriver      string
	DatabaseURL   string
	DBPath        string
	SeedPath      string
	ZonesPath     string
	RedisURL      string
	PortCacheTTL  time.Duration
	LookupTimeout time.Duration
	LogFile       string
}

// Load reads .env (if any) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := Config{
		Port:        Get("PORT", "8080"),
		DBDriver:    Get("DB_DRIVER", "sqlite"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBPath:      Get("DB_PATH", "data/app.db"),
		SeedPath:    Get("SEED_PATH", "data/seeds/reference.json"),
		ZonesPath:   os.Getenv("ZONES_PATH"),
		RedisURL:    os.Getenv("REDIS_URL"),
		LogFile:     os.Getenv("LOG_FILE"),
	}

	var err error
	if cfg.PortCacheTTL, err = duration("PORT_CACHE_TTL", time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.LookupTimeout, err = duration("LOOKUP_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}

	switch cfg.DBDriver {
	case "sqlite":
	case "pgx":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return Config{}, fmt.Errorf("config: DATABASE_URL is required when DB_DRIVER=pgx")
		}
	default:
		return Config{}, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

// DSN returns the data source name for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "pgx" {
		return c.DatabaseURL
	}
	return c.DBPath
}

func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive", key)
	}
	return d, nil
}
