package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL           string   `yaml:"database_url"`
	StorageDriver         string   `yaml:"storage_driver"`
	JWTSecretKey          string   `yaml:"jwt_secret_key"`
	OrganizerPasswordHash string   `yaml:"organizer_password_hash"`
	ServerPort            int      `yaml:"server_port"`
	LogLevel              string   `yaml:"log_level"`
	CORSAllowedOrigins    []string `yaml:"cors_allowed_origins"`

	R2AccountID       string `yaml:"r2_account_id"`
	R2AccessKeyID     string `yaml:"r2_access_key_id"`
	R2SecretAccessKey string `yaml:"r2_secret_access_key"`
	R2BucketName      string `yaml:"r2_bucket_name"`
	R2PublicBaseURL   string `yaml:"r2_public_base_url"`
}

func defaults() *Config {
	return &Config{
		StorageDriver:      DriverPostgres,
		ServerPort:         8080,
		LogLevel:           "info",
		CORSAllowedOrigins: []string{"*"},
	}
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML-файл (если
// path не пустой), затем переменные окружения. Файл .env подгружается, если он есть.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase is Load for commands that only talk to the database.
func LoadDatabase(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	return cfg, nil
}

func load(path string) (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	cfg := defaults()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.StorageDriver, "STORAGE_DRIVER")
	setString(&c.JWTSecretKey, "JWT_SECRET_KEY")
	setString(&c.OrganizerPasswordHash, "ORGANIZER_PASSWORD_HASH")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.R2AccountID, "R2_ACCOUNT_ID")
	setString(&c.R2AccessKeyID, "R2_ACCESS_KEY_ID")
	setString(&c.R2SecretAccessKey, "R2_SECRET_ACCESS_KEY")
	setString(&c.R2BucketName, "R2_BUCKET_NAME")
	setString(&c.R2PublicBaseURL, "R2_PUBLIC_BASE_URL")

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.CORSAllowedOrigins = nil
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.CORSAllowedOrigins = append(c.CORSAllowedOrigins, origin)
			}
		}
	}

	if portStr := os.Getenv("SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
		}
		c.ServerPort = port
	}
	return nil
}

func setString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func (c *Config) Validate() error {
	var errs []error
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres storage driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q, expected %q or %q", c.StorageDriver, DriverPostgres, DriverMemory))
	}
	if c.JWTSecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// ExportEnabled reports whether every R2 setting is present.
func (c *Config) ExportEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}
