package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lexiclass/lexiclass/pkg/storage"
	"github.com/lexiclass/lexiclass/pkg/tokenizer"
)

// Config represents lexiclass configuration
type Config struct {
	// Tokenization settings
	Tokenizer tokenizer.Config `yaml:"tokenizer"`

	// Classifier settings
	Classifier ClassifierConfig `yaml:"classifier"`

	// Model storage settings
	Storage storage.Config `yaml:"storage"`
}

// ClassifierConfig contains classifier parameters
type ClassifierConfig struct {
	// Laplace smoothing factor; must be positive
	Smoothing float64 `yaml:"smoothing"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Tokenizer:  *tokenizer.DefaultConfig(),
		Classifier: ClassifierConfig{Smoothing: 1.0},
		Storage:    *storage.DefaultConfig(),
	}
}

// LoadConfig loads configuration from a YAML file, starting from
// defaults. An empty path returns the defaults unchanged.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		return config, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a YAML file
func (c *Config) SaveConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Tokenizer.MinTokenLength < 1 {
		return fmt.Errorf("min_token_length must be >= 1")
	}
	if c.Tokenizer.MaxTokenLength > 0 && c.Tokenizer.MaxTokenLength < c.Tokenizer.MinTokenLength {
		return fmt.Errorf("max_token_length must be >= min_token_length")
	}

	if c.Classifier.Smoothing <= 0 {
		return fmt.Errorf("smoothing must be a positive number")
	}

	switch c.Storage.Backend {
	case "", "file":
		if c.Storage.File.Path == "" {
			return fmt.Errorf("file storage path cannot be empty")
		}
	case "redis":
		if c.Storage.Redis.URL == "" {
			return fmt.Errorf("redis url cannot be empty")
		}
	case "sqlite":
		if c.Storage.SQLite.Path == "" {
			return fmt.Errorf("sqlite storage path cannot be empty")
		}
	default:
		return fmt.Errorf("unknown storage backend: %s", c.Storage.Backend)
	}

	return nil
}
