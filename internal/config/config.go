// Package config loads the console's runtime configuration. Values come
// from an optional YAML file, then the environment on top; a local .env
// file is folded into the environment first for development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds everything the console needs at startup.
type Config struct {
	ListenAddr    string        `yaml:"listen_addr"`
	BackendURL    string        `yaml:"backend_url"`
	SessionFile   string        `yaml:"session_file"`
	HTTPTimeout   time.Duration `yaml:"http_timeout"`
	EnableMetrics bool          `yaml:"enable_metrics"`
	LogLevel      string        `yaml:"log_level"`
}

// Load assembles the configuration. The YAML file named by CONSOLE_CONFIG
// (if any) supplies the base; environment variables override field by field.
func Load() (*Config, error) {
	// Optional .env for local development; missing is fine.
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:  ":8090",
		BackendURL:  "http://localhost:8080",
		HTTPTimeout: 30 * time.Second,
		LogLevel:    "info",
	}

	if path := os.Getenv("CONSOLE_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config file")
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, errors.Wrap(err, "parse config file")
		}
	}

	if v := os.Getenv("CONSOLE_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("SESSION_FILE"); v != "" {
		cfg.SessionFile = v
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.Wrap(err, "parse HTTP_TIMEOUT")
		}
		cfg.HTTPTimeout = d
	}
	if v := os.Getenv("ENABLE_METRICS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.Wrap(err, "parse ENABLE_METRICS")
		}
		cfg.EnableMetrics = b
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// Validate rejects configurations the console cannot run with.
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return errors.New("backend URL is required")
	}
	if c.ListenAddr == "" {
		return errors.New("listen address is required")
	}
	if c.HTTPTimeout < 0 {
		return errors.New("HTTP timeout must not be negative")
	}
	return nil
}

// LoadAndValidate is the startup entry point.
func LoadAndValidate() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
