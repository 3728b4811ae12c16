package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port              string
	LogLevel          string
	SeedSampleData    bool
	ReportSchedule    string
	ReportTopAccounts int
	SMTPHost          string
	SMTPPort          string
	SMTPUsername      string
	SMTPPassword      string
	SenderEmail       string
}

// NewConfig loads configuration from environment variables. Values from a
// .env file in the working directory are used when the variable is unset.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	seed, err := strconv.ParseBool(getEnv("SEED_SAMPLE_DATA", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_SAMPLE_DATA: %w", err)
	}
	top, err := strconv.Atoi(getEnv("REPORT_TOP_ACCOUNTS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TOP_ACCOUNTS: %w", err)
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
		SeedSampleData:    seed,
		ReportSchedule:    getEnv("REPORT_SCHEDULE", "@every 1h"),
		ReportTopAccounts: top,
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getEnv("SMTP_PORT", "587"),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		SenderEmail:       getEnv("SENDER_EMAIL", "statements@bank.local"),
	}

	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT is required")
	}
	if cfg.ReportTopAccounts <= 0 {
		return nil, fmt.Errorf("REPORT_TOP_ACCOUNTS must be positive")
	}

	return cfg, nil
}

// MailEnabled reports whether statements can be sent over SMTP
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
