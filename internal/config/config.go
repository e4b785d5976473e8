// Package config loads Structura settings from a YAML file, a .env file and
// the environment, in that order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file when --config is not
// given
var DefaultPath = filepath.Join(".structura", "config.yaml")

// Config is the full application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Archive ArchiveConfig `yaml:"archive"`
	Logging LoggingConfig `yaml:"logging"`
	Batch   BatchConfig   `yaml:"batch"`
	Report  ReportConfig  `yaml:"report"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	APIToken        string   `yaml:"api_token"`        // empty disables bearer auth
	RateLimit       float64  `yaml:"rate_limit"`       // requests per second per client
	RateBurst       int      `yaml:"rate_burst"`
	MaxBatchItems   int      `yaml:"max_batch_items"`
	AllowedOrigins  []string `yaml:"allowed_origins"`  // "*" allows any
	ShutdownTimeout string   `yaml:"shutdown_timeout"` // e.g. "10s"
}

// ArchiveConfig configures the dossier archive
type ArchiveConfig struct {
	Path string `yaml:"path"` // empty disables archiving
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// BatchConfig configures batch evaluation
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// ReportConfig configures dossier output
type ReportConfig struct {
	Title     string `yaml:"title"`
	OutputDir string `yaml:"output_dir"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			RateLimit:       10,
			RateBurst:       20,
			MaxBatchItems:   500,
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: "10s",
		},
		Archive: ArchiveConfig{
			Path: filepath.Join(".structura", "archive.db"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		Report: ReportConfig{
			Title:     "Structural Dynamics Audit",
			OutputDir: ".",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies .env and
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	_ = godotenv.Load() // ignore missing file

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if addr := os.Getenv("STRUCTURA_ADDR"); addr != "" {
		c.Server.Addr = addr
	} else if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			return fmt.Errorf("invalid PORT: %s", portStr)
		}
		c.Server.Addr = fmt.Sprintf(":%d", port)
	}

	if token := os.Getenv("STRUCTURA_API_TOKEN"); token != "" {
		c.Server.APIToken = token
	}

	if path, ok := os.LookupEnv("STRUCTURA_ARCHIVE"); ok {
		c.Archive.Path = path
	}

	if level := os.Getenv("STRUCTURA_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if format := os.Getenv("STRUCTURA_LOG_FORMAT"); format != "" {
		c.Logging.Format = strings.ToLower(format)
	}

	if workersStr := os.Getenv("STRUCTURA_BATCH_WORKERS"); workersStr != "" {
		workers, err := strconv.Atoi(workersStr)
		if err != nil || workers <= 0 {
			return fmt.Errorf("invalid STRUCTURA_BATCH_WORKERS: %s", workersStr)
		}
		c.Batch.Workers = workers
	}

	return nil
}

// GetShutdownTimeout returns the shutdown timeout as a duration
func (c *Config) GetShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// ArchiveEnabled reports whether dossiers are archived
func (c *Config) ArchiveEnabled() bool {
	return c.Archive.Path != ""
}

// ValidLogLevels lists the accepted logging levels
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats lists the accepted logging formats
var ValidLogFormats = []string{"json", "console"}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server address not configured")
	}
	if c.Server.RateLimit <= 0 || c.Server.RateBurst <= 0 {
		return fmt.Errorf("rate limit must be positive (got %g/s, burst %d)", c.Server.RateLimit, c.Server.RateBurst)
	}
	if c.Server.MaxBatchItems <= 0 {
		return fmt.Errorf("max_batch_items must be positive (got %d)", c.Server.MaxBatchItems)
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("batch workers must be positive (got %d)", c.Batch.Workers)
	}
	if !contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	if !contains(ValidLogFormats, c.Logging.Format) {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, ValidLogFormats)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
