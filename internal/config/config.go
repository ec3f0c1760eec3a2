// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Server ServerConfig
	Upload UploadConfig
	TMDB   TMDBConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Name         string
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// UploadConfig holds export upload configuration.
type UploadConfig struct {
	// MaxSize is the largest accepted export archive in bytes (default: 32 MiB)
	MaxSize int64
}

// TMDBConfig holds TMDB API configuration.
type TMDBConfig struct {
	// APIKey authenticates requests; enrichment is unavailable without it
	APIKey string
	// BaseURL overrides the API endpoint (default: https://api.themoviedb.org/3)
	BaseURL string
	// BatchSize is the number of films enriched concurrently (default: 40)
	BatchSize int
	// BatchDelay is the pause between batches (default: 1s)
	BatchDelay time.Duration
	// RequestsPerSecond caps the outbound request rate (default: 40)
	RequestsPerSecond float64
	// Burst is the outbound rate limiter burst (default: 40)
	Burst int
	// CastLimit is the number of credited actors kept per film (default: 10)
	CastLimit int
	// DropUnmatched discards films the provider cannot identify (default: false)
	DropUnmatched bool
	// MinRuntime filters out matches shorter than this many minutes (default: 0, disabled)
	MinRuntime int
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	// Define command-line flags.
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	serverName := flag.String("server-name", "", "Name for the server")

	// Server flags
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	// Upload flags
	uploadMaxSize := flag.String("upload-max-size", "", "Max export archive size in bytes (default: 33554432)")

	// TMDB flags
	tmdbAPIKey := flag.String("tmdb-api-key", "", "TMDB API key")
	tmdbBaseURL := flag.String("tmdb-base-url", "", "TMDB API base URL")
	tmdbBatchSize := flag.String("tmdb-batch-size", "", "Films enriched per batch (default: 40)")
	tmdbBatchDelay := flag.String("tmdb-batch-delay", "", "Delay between enrichment batches (default: 1s)")
	tmdbDropUnmatched := flag.String("tmdb-drop-unmatched", "", "Drop films the provider cannot identify (default: false)")
	tmdbMinRuntime := flag.String("tmdb-min-runtime", "", "Minimum runtime in minutes for a match (default: 0)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	// Parse flags but don't exit on error - we want to handle it gracefully.
	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	// Build config with proper precedence.
	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Name: getConfigValue(*serverName, "SERVER_NAME", "Screend Server"),
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},
		Upload: UploadConfig{
			MaxSize: int64(getIntConfigValue(*uploadMaxSize, "UPLOAD_MAX_SIZE", 32<<20)),
		},
		TMDB: TMDBConfig{
			APIKey:            getConfigValue(*tmdbAPIKey, "TMDB_API_KEY", ""),
			BaseURL:           getConfigValue(*tmdbBaseURL, "TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			BatchSize:         getIntConfigValue(*tmdbBatchSize, "TMDB_BATCH_SIZE", 40),
			RequestsPerSecond: float64(getIntConfigValue("", "TMDB_RPS", 40)),
			Burst:             getIntConfigValue("", "TMDB_BURST", 40),
			CastLimit:         getIntConfigValue("", "TMDB_CAST_LIMIT", 10),
			DropUnmatched:     getBoolConfigValue(*tmdbDropUnmatched, "TMDB_DROP_UNMATCHED", false),
			MinRuntime:        getIntConfigValue(*tmdbMinRuntime, "TMDB_MIN_RUNTIME", 0),
		},
	}

	// Parse server timeouts.
	readTimeoutStr := getConfigValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	readTimeoutDuration, err := time.ParseDuration(readTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid read timeout %q: %w", readTimeoutStr, err)
	}
	cfg.Server.ReadTimeout = readTimeoutDuration

	writeTimeoutStr := getConfigValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s")
	writeTimeoutDuration, err := time.ParseDuration(writeTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid write timeout %q: %w", writeTimeoutStr, err)
	}
	cfg.Server.WriteTimeout = writeTimeoutDuration

	idleTimeoutStr := getConfigValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	idleTimeoutDuration, err := time.ParseDuration(idleTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid idle timeout %q: %w", idleTimeoutStr, err)
	}
	cfg.Server.IdleTimeout = idleTimeoutDuration

	// Parse batch delay.
	batchDelayStr := getConfigValue(*tmdbBatchDelay, "TMDB_BATCH_DELAY", "1s")
	batchDelay, err := time.ParseDuration(batchDelayStr)
	if err != nil {
		return nil, fmt.Errorf("invalid batch delay %q: %w", batchDelayStr, err)
	}
	cfg.TMDB.BatchDelay = batchDelay

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Upload.MaxSize <= 0 {
		return errors.New("upload max size must be positive")
	}

	if c.TMDB.BatchSize <= 0 {
		return errors.New("TMDB batch size must be positive")
	}
	if c.TMDB.BatchDelay < 0 {
		return errors.New("TMDB batch delay cannot be negative")
	}
	if c.TMDB.MinRuntime < 0 {
		return errors.New("TMDB minimum runtime cannot be negative")
	}

	// APIKey can be empty - the dashboard works unenriched without it.

	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
