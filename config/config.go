// ABOUTME: Runtime configuration for the directory client
// ABOUTME: Loads optional .env files, then environment variables with defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	// AppName names the XDG directories used for config and logs.
	AppName = "mobiledir"

	// DefaultBackendURL is used when no backend URL is configured.
	DefaultBackendURL = "http://localhost:5000"
)

// Config holds everything the client surfaces need at startup.
type Config struct {
	BackendURL     string        `env:"MOBILEDIR_BACKEND_URL"`
	ViteBackendURL string        `env:"VITE_BACKEND_URL"`
	HTTPTimeout    time.Duration `env:"MOBILEDIR_HTTP_TIMEOUT" envDefault:"0s"`

	LogLevel  string `env:"MOBILEDIR_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"MOBILEDIR_LOG_FORMAT" envDefault:"text"` // text, json
	LogFile   string `env:"MOBILEDIR_LOG_FILE"`
}

// DotenvPaths returns the .env files consulted, in priority order.
func DotenvPaths() []string {
	return []string{
		".env",
		filepath.Join(xdg.ConfigHome, AppName, ".env"),
	}
}

// DefaultLogFile returns the XDG state path for the log file.
func DefaultLogFile() string {
	return filepath.Join(xdg.StateHome, AppName, AppName+".log")
}

// Load reads .env files (never overriding variables already set) and then
// parses the environment.
func Load() (*Config, error) {
	for _, path := range DotenvPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// SetBackendURL overrides the configured backend, e.g. from a flag.
func (c *Config) SetBackendURL(u string) {
	if strings.TrimSpace(u) == "" {
		return
	}
	c.BackendURL = normalizeURL(u)
}

func (c *Config) applyDefaults() {
	switch {
	case strings.TrimSpace(c.BackendURL) != "":
		c.BackendURL = normalizeURL(c.BackendURL)
	case strings.TrimSpace(c.ViteBackendURL) != "":
		c.BackendURL = normalizeURL(c.ViteBackendURL)
	default:
		c.BackendURL = DefaultBackendURL
	}

	if c.LogFile == "" {
		c.LogFile = DefaultLogFile()
	}
	if c.HTTPTimeout < 0 {
		c.HTTPTimeout = 0
	}
}

func normalizeURL(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}
