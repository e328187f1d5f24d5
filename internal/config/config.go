package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dfryer1193/photogram/shared/auth"
	"github.com/dfryer1193/photogram/shared/db/sqlite"
	"github.com/joho/godotenv"
)

const (
	defaultPort            = 8080
	defaultIssuer          = "photogram"
	defaultTokenTTL        = 24 * time.Hour
	defaultShutdownTimeout = 5 * time.Second
)

type Config struct {
	Port            int
	ShutdownTimeout time.Duration
	NotifyOnLike    bool

	SQLite *sqlite.SQLiteConfig
	Tokens auth.TokenConfig
}

// LoadDotEnv reads path into the environment if it exists. Variables that
// are already set win over the file.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load builds the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		SQLite: sqlite.NewSQLiteConfig(),
		Tokens: auth.TokenConfig{
			Secret: []byte(os.Getenv("JWT_SECRET")),
			Issuer: stringEnv("JWT_ISSUER", defaultIssuer),
		},
	}

	var err error
	if cfg.Port, err = intEnv("HTTP_PORT", defaultPort); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		return nil, err
	}
	if cfg.Tokens.TTL, err = durationEnv("JWT_TTL", defaultTokenTTL); err != nil {
		return nil, err
	}
	if cfg.NotifyOnLike, err = boolEnv("NOTIFY_ON_LIKE", false); err != nil {
		return nil, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("HTTP_PORT %d is out of range", cfg.Port)
	}

	return cfg, nil
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}
