// Package config loads application configuration from YAML with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file used when none is specified.
const DefaultPath = "config.yaml"

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret        string        `yaml:"secret"`
	AccessExpiry  time.Duration `yaml:"access-expiry"`
	RefreshExpiry time.Duration `yaml:"refresh-expiry"`
}

// UnmarshalYAML accepts Go duration strings such as "15m" or "168h" for the
// expiry fields. Fields absent from the document keep their prior values.
func (j *JWTConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Secret        string `yaml:"secret"`
		AccessExpiry  string `yaml:"access-expiry"`
		RefreshExpiry string `yaml:"refresh-expiry"`
	}
	if errDecode := value.Decode(&raw); errDecode != nil {
		return errDecode
	}
	if raw.Secret != "" {
		j.Secret = raw.Secret
	}
	if raw.AccessExpiry != "" {
		d, errParse := time.ParseDuration(raw.AccessExpiry)
		if errParse != nil {
			return fmt.Errorf("jwt.access-expiry: %w", errParse)
		}
		j.AccessExpiry = d
	}
	if raw.RefreshExpiry != "" {
		d, errParse := time.ParseDuration(raw.RefreshExpiry)
		if errParse != nil {
			return fmt.Errorf("jwt.refresh-expiry: %w", errParse)
		}
		j.RefreshExpiry = d
	}
	return nil
}

// OpenAIConfig holds provider client settings.
type OpenAIConfig struct {
	APIKey  string `yaml:"api-key"`
	BaseURL string `yaml:"base-url"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max-size-mb"`
	MaxBackups int    `yaml:"max-backups"`
}

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig      `yaml:"server"`
	Database DatabaseConfig    `yaml:"database"`
	JWT      JWTConfig         `yaml:"jwt"`
	OpenAI   OpenAIConfig      `yaml:"openai"`
	Models   map[string]string `yaml:"models"`
	Logging  LoggingConfig     `yaml:"logging"`
}

// defaults returns the baseline configuration before file and env overrides.
func defaults() *Config {
	return &Config{
		Server:   ServerConfig{Addr: ":5000"},
		Database: DatabaseConfig{DSN: "data/app.db"},
		JWT: JWTConfig{
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 7 * 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 5,
		},
	}
}

// Load reads the config file at path (when it exists) and applies environment
// overrides. A missing file is not an error; env-only deployments are valid.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	data, errRead := os.ReadFile(path)
	if errRead == nil {
		if errUnmarshal := yaml.Unmarshal(data, cfg); errUnmarshal != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, errUnmarshal)
		}
	} else if !os.IsNotExist(errRead) {
		return nil, fmt.Errorf("config: read %s: %w", path, errRead)
	}

	applyEnv(cfg)

	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, fmt.Errorf("config: jwt secret is required (set jwt.secret or JWT_SECRET)")
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto the loaded configuration.
func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := strings.TrimSpace(os.Getenv("SERVER_ADDR")); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		cfg.Database.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv("JWT_SECRET")); v != "" {
		cfg.JWT.Secret = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")); v != "" {
		cfg.OpenAI.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FILE")); v != "" {
		cfg.Logging.File = v
	}
}
