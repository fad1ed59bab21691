package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr              string
	Environment       string
	TaxTableDir       string
	TaxTableVersion   string
	PayPeriodsPerYear int
	PreviewWorkers    int
	DatabaseURL       string
	JWTSecret         string
	AuthTokenTTL      time.Duration
	AdminEmail        string
	AdminPasswordHash string
	MaxBodyBytes      int64
}

func Load() Config {
	return Config{
		Addr:              getEnv("APP_ADDR", ":8080"),
		Environment:       getEnv("APP_ENV", "development"),
		TaxTableDir:       getEnv("TAX_TABLE_DIR", "data/tax_tables"),
		TaxTableVersion:   getEnv("TAX_TABLE_VERSION", ""),
		PayPeriodsPerYear: getEnvInt("PAY_PERIODS_PER_YEAR", 26),
		PreviewWorkers:    getEnvInt("PREVIEW_WORKERS", 4),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		AuthTokenTTL:      getEnvDuration("AUTH_TOKEN_TTL", 12*time.Hour),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.TaxTableVersion) == "" {
		return fmt.Errorf("TAX_TABLE_VERSION is required")
	}
	if c.PayPeriodsPerYear <= 0 {
		return fmt.Errorf("PAY_PERIODS_PER_YEAR must be positive")
	}
	if c.PreviewWorkers <= 0 {
		return fmt.Errorf("PREVIEW_WORKERS must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.DatabaseURL == "" && strings.TrimSpace(c.TaxTableDir) == "" {
		return fmt.Errorf("TAX_TABLE_DIR is required when DATABASE_URL is not set")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if strings.TrimSpace(c.AdminPasswordHash) == "" {
			return fmt.Errorf("ADMIN_PASSWORD_HASH must be set in production")
		}
	}
	return nil
}
