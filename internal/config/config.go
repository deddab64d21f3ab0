package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort              string
	DBPath               string
	CorpusPath           string
	DefaultRefType       string
	EquationEnvironments []string
	InferenceRulesPath   string
	LogLevel             slog.Level
	LogFormat            string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:            getEnv("API_PORT", "9000"),
		DBPath:             getEnv("DB_PATH", "./data/xref.db"),
		CorpusPath:         getEnv("CORPUS_PATH", ""),
		DefaultRefType:     getEnv("DEFAULT_REF_TYPE", "ref"),
		InferenceRulesPath: getEnv("INFERENCE_RULES_PATH", ""),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	// Parse EQUATION_ENVIRONMENTS as a comma-separated list. Empty means
	// "use the built-in set".
	if raw := getEnv("EQUATION_ENVIRONMENTS", ""); raw != "" {
		for _, kind := range strings.Split(raw, ",") {
			kind = strings.TrimSpace(kind)
			if kind != "" {
				cfg.EquationEnvironments = append(cfg.EquationEnvironments, kind)
			}
		}
		if len(cfg.EquationEnvironments) == 0 {
			return nil, fmt.Errorf("EQUATION_ENVIRONMENTS must contain at least one environment name")
		}
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	if cfg.CorpusPath != "" {
		info, err := os.Stat(cfg.CorpusPath)
		if err != nil {
			return nil, fmt.Errorf("CORPUS_PATH %q is not accessible: %w", cfg.CorpusPath, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("CORPUS_PATH %q is not a directory", cfg.CorpusPath)
		}
	}

	// Create the data directory if it doesn't exist (for the DB file)
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// parseLogLevel converts a level name to a slog.Level.
func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
