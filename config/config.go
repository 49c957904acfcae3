// Package config loads assistant configuration from a YAML file and
// environment variables. Environment values override the file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Config holds all assistant configuration.
type Config struct {
	// Server configuration
	ListenAddr string `yaml:"listen_addr"`

	Completion CompletionConfig `yaml:"completion"`
	Weather    WeatherConfig    `yaml:"weather"`
	Memory     MemoryConfig     `yaml:"memory"`
	Calendar   CalendarConfig   `yaml:"calendar"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// CompletionConfig configures the generative backend.
type CompletionConfig struct {
	APIKey    string        `yaml:"api_key"`
	Model     string        `yaml:"model"`
	MaxTokens int64         `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"`
}

// WeatherConfig configures the OpenWeather collaborator.
type WeatherConfig struct {
	APIKey string `yaml:"api_key"`
}

// MemoryConfig configures the semantic memory tier.
type MemoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	TopK    int    `yaml:"top_k"`

	// EmbedCacheEntries bounds the embedding memoization cache.
	EmbedCacheEntries int64 `yaml:"embed_cache_entries"`

	// ONNX model files, used only in builds with local inference.
	ModelPath     string `yaml:"model_path"`
	TokenizerPath string `yaml:"tokenizer_path"`
}

// CalendarConfig configures the event store.
type CalendarConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ListenAddr: ":8080",
		Completion: CompletionConfig{
			Timeout: 8 * time.Second,
		},
		Memory: MemoryConfig{
			Enabled:           true,
			TopK:              3,
			EmbedCacheEntries: 4096,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path (when non-empty) over the defaults,
// then applies environment overrides and validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FRIDAY_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.Completion.APIKey = v
	}
	if v := os.Getenv("FRIDAY_MODEL"); v != "" {
		c.Completion.Model = v
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		c.Weather.APIKey = v
	}
	if v := os.Getenv("FRIDAY_MEMORY_PATH"); v != "" {
		c.Memory.Path = v
	}
	if v := os.Getenv("FRIDAY_CALENDAR_PATH"); v != "" {
		c.Calendar.Path = v
	}
	if v := os.Getenv("FRIDAY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration, collecting every problem.
func (c *Config) Validate() error {
	var result error

	if c.ListenAddr == "" {
		result = multierror.Append(result, fmt.Errorf("listen_addr must not be empty"))
	}
	if c.Completion.Timeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("completion timeout must be greater than 0"))
	}
	if c.Completion.MaxTokens < 0 {
		result = multierror.Append(result, fmt.Errorf("completion max_tokens cannot be negative"))
	}
	if c.Memory.TopK <= 0 {
		result = multierror.Append(result, fmt.Errorf("memory top_k must be greater than 0"))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		result = multierror.Append(result, fmt.Errorf("log level must be one of [debug, info, warn, error], got %q", c.Logging.Level))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		result = multierror.Append(result, fmt.Errorf("log format must be either 'json' or 'text', got %q", c.Logging.Format))
	}

	return result
}
