// Package config handles CLI configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/petal-labs/openaikit/core"
	"github.com/petal-labs/openaikit/openai"
)

// Config is the CLI configuration. File values are overridden by the
// environment. The API key is read from the environment only.
type Config struct {
	DefaultModel string        `yaml:"default_model,omitempty" env:"OPENAIKIT_MODEL"`
	Organization string        `yaml:"organization,omitempty" env:"OPENAI_ORGANIZATION"`
	Host         string        `yaml:"host,omitempty" env:"OPENAI_HOST" env-default:"api.openai.com"`
	Timeout      time.Duration `yaml:"timeout,omitempty" env:"OPENAI_TIMEOUT" env-default:"60s"`

	APIKey string `yaml:"-" env:"OPENAI_API_KEY"`
}

// DefaultConfigPath returns the default configuration file path for the current platform.
// - macOS/Linux: ~/.openaikit/config.yaml
// - Windows: %USERPROFILE%\.openaikit\config.yaml
func DefaultConfigPath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		return "config.yaml"
	}

	return filepath.Join(homeDir, ".openaikit", "config.yaml")
}

// LoadConfig loads configuration from path and the environment.
// A missing file is not an error; the environment and defaults still apply.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("read environment: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path, creating the directory if needed.
// The API key is never written.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// ClientConfiguration converts cfg for openai.New.
func (c *Config) ClientConfiguration() openai.Configuration {
	return openai.Configuration{
		Token:                  core.NewSecret(c.APIKey),
		OrganizationIdentifier: c.Organization,
		Host:                   c.Host,
		Timeout:                c.Timeout,
	}
}
