package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Store  StoreConfig
	SMTP   SMTPConfig
	Import ImportConfig
	Batch  BatchConfig
}

// StoreConfig holds storage-related configuration
type StoreConfig struct {
	DSN             string        // postgres DSN; empty selects the sqlite path
	SQLitePath      string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// SMTPConfig holds outbound mail configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// ImportConfig holds PDF import configuration
type ImportConfig struct {
	MarginCm float64
	Debounce time.Duration
}

// BatchConfig holds outbound batching configuration
type BatchConfig struct {
	BudgetBytes int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Store: StoreConfig{
			DSN:             getEnv("DB_URL", ""),
			SQLitePath:      getEnv("SQLITE_PATH", "./platetrack.db"),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
			To:       getEnv("NOTIFY_TO", ""),
		},
		Import: ImportConfig{
			MarginCm: getEnvAsFloat64("IMPORT_MARGIN_CM", 1.0),
			Debounce: getEnvAsDuration("IMPORT_DEBOUNCE", 500*time.Millisecond),
		},
		Batch: BatchConfig{
			BudgetBytes: getEnvAsInt("BATCH_BUDGET_BYTES", 4000),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateMail checks the pieces required before attempting batch sends.
func (c *Config) ValidateMail() error {
	if c.SMTP.Host == "" {
		return NewAppError("CONFIG_ERROR", "SMTP_HOST is required", ErrInvalidInput)
	}
	if c.SMTP.From == "" {
		return NewAppError("CONFIG_ERROR", "SMTP_FROM is required", ErrInvalidInput)
	}
	if c.SMTP.To == "" {
		return NewAppError("CONFIG_ERROR", "NOTIFY_TO is required", ErrInvalidInput)
	}
	return nil
}
