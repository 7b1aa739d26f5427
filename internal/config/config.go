// Package config loads formatter settings from a YAML file, the
// environment, and CLI overrides, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for devfmt
type Config struct {
	Mode string     `yaml:"mode"` // json, sql, mongo or postgres
	JSON JSONConfig `yaml:"json"`
	SQL  SQLConfig  `yaml:"sql"`
	Dev  DevConfig  `yaml:"dev"`
}

// JSONConfig controls the JSON formatter
type JSONConfig struct {
	Indent   int  `yaml:"indent"` // 2, 4 or 8 spaces
	Compress bool `yaml:"compress"`
}

// SQLConfig controls the SQL statement formatter
type SQLConfig struct {
	Uppercase    bool `yaml:"uppercase"`
	StatementGap int  `yaml:"statement_gap"` // blank lines between statements
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Mode: "json",
		JSON: JSONConfig{
			Indent:   4,
			Compress: false,
		},
		SQL: SQLConfig{
			Uppercase:    true,
			StatementGap: 1,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".devfmt.yml", ".devfmt.yaml", "devfmt.yml", "devfmt.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// ApplyEnv overlays DEVFMT_* environment variables onto the config. A
// .env file in the working directory is loaded first when present;
// its absence is not an error.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("DEVFMT_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("DEVFMT_INDENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.JSON.Indent = n
		}
	}
	if v := os.Getenv("DEVFMT_COMPRESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.JSON.Compress = b
		}
	}
	if v := os.Getenv("DEVFMT_UPPERCASE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SQL.Uppercase = b
		}
	}
	if v := os.Getenv("DEVFMT_STATEMENT_GAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SQL.StatementGap = n
		}
	}
	if v := os.Getenv("DEVFMT_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Dev.Debug = b
		}
	}
}

// Load resolves the effective configuration: defaults, then the config
// file (explicit path or discovered), then the environment.
func Load(explicitPath string) (*Config, error) {
	path := explicitPath
	if path == "" {
		path = FindConfigFile()
	}

	cfg := NewConfig()
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			if explicitPath != "" {
				return nil, err
			}
			// A broken discovered file should not block the run.
		} else {
			cfg = loaded
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}
