// FILE: internal/config/config.go

// Package config centralizes environment-driven settings for the puzzle
// server and CLI. Values come from the process environment, with an optional
// .env file loaded first.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	// DBPath points at an existing puzzle database file. Empty means use
	// the default location and download on first use.
	DBPath string

	// DownloadURL overrides where the default database is fetched from.
	DownloadURL string

	// ListenAddr is the HTTP server bind address.
	ListenAddr string

	// DownloadTimeout bounds the one-shot database fetch.
	DownloadTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present; real environment variables win.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		ListenAddr:      ":8080",
		DownloadTimeout: 10 * time.Minute,
	}

	if v := os.Getenv("PUZZLEKIT_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PUZZLEKIT_DB_URL"); v != "" {
		cfg.DownloadURL = v
	}
	if v := os.Getenv("PUZZLEKIT_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("PUZZLEKIT_DOWNLOAD_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PUZZLEKIT_DOWNLOAD_TIMEOUT %q: %w", v, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("PUZZLEKIT_DOWNLOAD_TIMEOUT must be positive, got %q", v)
		}
		cfg.DownloadTimeout = d
	}

	return cfg, nil
}
