// Package config loads service configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full service configuration.
type Config struct {
	Port           string
	AllowedOrigins []string

	// Provider selects the scoring backend registered with the evaluator
	// registry: "heuristic" (default, local) or "gemini".
	Provider    string
	EvalTimeout time.Duration

	DBDriver    string // "sqlite" or "postgres"
	SQLitePath  string
	PostgresDSN string

	ExportSchedule string
	ExportDir      string
	ExportEnabled  bool
}

// LoadConfig reads and validates configuration from the environment.
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		Provider:       getEnv("EVAL_PROVIDER", "heuristic"),
		EvalTimeout:    getEnvDuration("EVAL_TIMEOUT", 30*time.Second),
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		SQLitePath:     getEnv("SQLITE_PATH", "interview.db"),
		ExportSchedule: getEnv("REPORT_EXPORT_SCHEDULE", "0 2 * * *"),
		ExportDir:      getEnv("REPORT_EXPORT_DIR", "./exports"),
		ExportEnabled:  getEnvBool("REPORT_EXPORT_ENABLED", false),
	}

	if config.DBDriver == "postgres" {
		config.PostgresDSN = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			getEnv("POSTGRES_HOST", "localhost"),
			getEnv("POSTGRES_USER", "postgres"),
			getEnv("POSTGRES_PASSWORD", "postgres"),
			getEnv("POSTGRES_DB", "postgres"),
			getEnv("POSTGRES_PORT", "5432"),
			getEnv("POSTGRES_SSLMODE", "disable"),
		)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	switch config.Provider {
	case "heuristic", "gemini":
	default:
		return errors.New("unsupported evaluation provider: " + config.Provider + ". Currently supported: heuristic, gemini")
	}
	switch config.DBDriver {
	case "sqlite", "postgres":
	default:
		return errors.New("unsupported database driver: " + config.DBDriver + ". Currently supported: sqlite, postgres")
	}
	if config.EvalTimeout <= 0 {
		return errors.New("EVAL_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
