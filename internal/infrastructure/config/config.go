// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	dbPath := cfg.Storage.DatabasePath
//	window := cfg.Matcher.BusinessDayWindow
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ledgermatch/ledgermatch/internal/adapters/matricial"
)

// Config represents the entire application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Storage       StorageConfig       `yaml:"storage"`
	Matcher       MatcherConfig       `yaml:"matcher"`
	Report        ReportConfig        `yaml:"report"`
	Pix           PixConfig           `yaml:"pix"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds the API server settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StorageConfig holds database configuration
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// MatcherConfig holds the suggestion engine tuning knobs. Zero values
// mean the engine defaults.
type MatcherConfig struct {
	BusinessDayWindow int     `yaml:"business_day_window"`
	CardTolerance     float64 `yaml:"card_tolerance"`
	MinTokenLen       int     `yaml:"min_token_len"`
	MinTokenOverlap   int     `yaml:"min_token_overlap"`
	MaxCandidates     int     `yaml:"max_candidates"`
}

// ReportConfig holds the report extractor layout
type ReportConfig struct {
	Columns matricial.Columns `yaml:"columns"`
}

// PixConfig holds the Pix charge code settings
type PixConfig struct {
	ReceiverName string            `yaml:"receiver_name"`
	ReceiverCity string            `yaml:"receiver_city"`
	Keys         map[string]string `yaml:"keys"` // label -> pix key
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${LEDGERMATCH_DB_PATH})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnvInt("LEDGERMATCH_PORT", 8080),
		},
		Storage: StorageConfig{
			DatabasePath: getEnv("LEDGERMATCH_DB_PATH", "ledgermatch.db"),
		},
		Matcher: MatcherConfig{
			BusinessDayWindow: getEnvInt("LEDGERMATCH_BUSDAY_WINDOW", 0),
			MinTokenLen:       getEnvInt("LEDGERMATCH_MIN_TOKEN_LEN", 0),
			MinTokenOverlap:   getEnvInt("LEDGERMATCH_MIN_TOKEN_OVERLAP", 0),
			MaxCandidates:     getEnvInt("LEDGERMATCH_MAX_CANDIDATES", 0),
		},
		Pix: PixConfig{
			ReceiverName: os.Getenv("LEDGERMATCH_PIX_RECEIVER_NAME"),
			ReceiverCity: os.Getenv("LEDGERMATCH_PIX_RECEIVER_CITY"),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from specified path, falls back to environment variables
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}
