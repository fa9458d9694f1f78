// Package config provides unified configuration loading for the pipeline
// service. Supports YAML files, environment variables, and programmatic
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the pipeline service.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Auth          AuthConfig          `yaml:"auth"`
	LLM           LLMConfig           `yaml:"llm"`
	PDF           PDFConfig           `yaml:"pdf"`
	Fetch         FetchConfig         `yaml:"fetch"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
	MaxBodyBytes     int64         `yaml:"max_body_bytes"`
}

// AuthConfig holds API-key authentication settings. An empty key disables
// authentication entirely.
type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// LLMConfig holds OpenRouter arbitration settings. An empty APIKey disables
// arbitration.
type LLMConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// PDFConfig holds page-rendering settings.
type PDFConfig struct {
	RenderDPI   int `yaml:"render_dpi"`
	TargetWidth int `yaml:"target_width"`
	JPEGQuality int `yaml:"jpeg_quality"`
}

// FetchConfig holds outbound HTTP settings for document downloads and
// uploads.
type FetchConfig struct {
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration from a YAML file and applies environment
// overrides. An empty path skips the file and uses defaults plus
// environment.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults for
// development.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8080,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     60 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 10 * time.Second,
			MaxBodyBytes:     32 << 20,
		},
		LLM: LLMConfig{
			Model:   "qwen/qwen2.5-7b-instruct",
			Timeout: 15 * time.Second,
		},
		PDF: PDFConfig{
			RenderDPI:   150,
			TargetWidth: 1200,
			JPEGQuality: 85,
		},
		Fetch: FetchConfig{
			RequestTimeout: 20 * time.Second,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.PDF.RenderDPI < 36 || c.PDF.RenderDPI > 600 {
		return fmt.Errorf("render_dpi must be between 36 and 600, got %d", c.PDF.RenderDPI)
	}

	if c.PDF.JPEGQuality < 1 || c.PDF.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be between 1 and 100, got %d", c.PDF.JPEGQuality)
	}

	if c.PDF.TargetWidth < 0 {
		return fmt.Errorf("target_width must not be negative, got %d", c.PDF.TargetWidth)
	}

	if c.Fetch.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.Fetch.RequestTimeout)
	}

	return nil
}

// AuthEnabled reports whether inbound requests require an API key.
func (c *Config) AuthEnabled() bool {
	return c.Auth.APIKey != ""
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("PIPELINE_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}

	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}

	if v := os.Getenv("OPENROUTER_MODEL"); v != "" {
		cfg.LLM.Model = v
	}

	if v := os.Getenv("OPENROUTER_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.LLM.Timeout = time.Duration(secs) * time.Second
		}
	}

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Fetch.RequestTimeout = time.Duration(secs) * time.Second
		}
	}

	if v := os.Getenv("PDF_RENDER_DPI"); v != "" {
		if dpi, err := strconv.Atoi(v); err == nil {
			cfg.PDF.RenderDPI = dpi
		}
	}

	if v := os.Getenv("PDF_TARGET_WIDTH"); v != "" {
		if width, err := strconv.Atoi(v); err == nil {
			cfg.PDF.TargetWidth = width
		}
	}

	if v := os.Getenv("PDF_JPEG_QUALITY"); v != "" {
		if quality, err := strconv.Atoi(v); err == nil {
			cfg.PDF.JPEGQuality = quality
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}
