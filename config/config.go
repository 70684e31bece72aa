// Package config supplies environment-derived defaults. CLI flags take
// precedence over everything here.
package config

import (
	"os"
	"strconv"
	"strings"
)

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level      string
	Pretty     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Config is the top-level configuration.
type Config struct {
	Logging LoggingConfig

	// WorkDir, when set, is used instead of a fresh temp dir for
	// intermediate page files.
	WorkDir string

	// KeepWork leaves the work dir behind for debugging.
	KeepWork bool
}

// FromEnv loads configuration from the environment with sensible defaults.
func FromEnv() Config {
	return Config{
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "warn"),
			Pretty:     parseBool(getEnv("LOG_PRETTY", "true")),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  parseInt(getEnv("LOG_MAX_SIZE_MB", "20"), 20),
			MaxBackups: parseInt(getEnv("LOG_MAX_BACKUPS", "3"), 3),
			MaxAgeDays: parseInt(getEnv("LOG_MAX_AGE_DAYS", "30"), 30),
			Compress:   parseBool(getEnv("LOG_COMPRESS", "true")),
		},
		WorkDir:  getEnv("WORK_DIR", ""),
		KeepWork: parseBool(getEnv("KEEP_WORK", "0")),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseBool(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
