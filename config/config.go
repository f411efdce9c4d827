// Package config loads client configuration from a JSON file with
// SMARTSUM_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the smartsum client.
type Config struct {
	General    GeneralConfig    `mapstructure:"general"`
	Server     ServerConfig     `mapstructure:"server"`
	Resolver   ResolverConfig   `mapstructure:"resolver"`
	Summarizer SummarizerConfig `mapstructure:"summarizer"`
	History    HistoryConfig    `mapstructure:"history"`
	Session    SessionConfig    `mapstructure:"session"`
	MockAPI    MockAPIConfig    `mapstructure:"mockapi"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Debug          bool          `mapstructure:"debug"`
	LogLevel       string        `mapstructure:"log_level"`
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`
}

// ServerConfig points the client at the summarization backend.
type ServerConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

func (s ServerConfig) Validate() error {
	if strings.TrimSpace(s.BaseURL) == "" {
		return fmt.Errorf("server.base_url is required")
	}
	return nil
}

// ResolverConfig controls URL content extraction.
type ResolverConfig struct {
	Mode     string        `mapstructure:"mode"` // remote or local
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxChars int           `mapstructure:"max_chars"`
}

func (r ResolverConfig) Validate() error {
	switch r.Mode {
	case "", "remote", "local":
	default:
		return fmt.Errorf("resolver.mode must be remote or local, got %q", r.Mode)
	}
	if r.Timeout < 0 {
		return fmt.Errorf("resolver.timeout cannot be negative")
	}
	return nil
}

// SummarizerConfig bounds the summarization call.
type SummarizerConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// HistoryConfig controls the local history slot.
type HistoryConfig struct {
	Path     string `mapstructure:"path"`
	Capacity int    `mapstructure:"capacity"`
}

// SessionConfig controls where the bearer token lives.
type SessionConfig struct {
	TokenPath string `mapstructure:"token_path"`
}

// MockAPIConfig configures the development mock backend.
type MockAPIConfig struct {
	Address   string        `mapstructure:"address"`
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// Validate checks the whole tree.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Resolver.Validate(); err != nil {
		return err
	}
	if c.History.Capacity < 0 {
		return fmt.Errorf("history.capacity cannot be negative")
	}
	return nil
}

// LoadConfig reads configuration from path, or from the default search
// paths when path is empty. A missing file is not fatal for the client;
// defaults and environment overrides apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")

	home, _ := os.UserHomeDir()
	stateDir := filepath.Join(home, ".smartsum")

	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.default_timeout", "30s")
	v.SetDefault("server.base_url", "http://localhost:8000")
	v.SetDefault("resolver.mode", "remote")
	v.SetDefault("resolver.timeout", "20s")
	v.SetDefault("resolver.max_chars", 15000)
	v.SetDefault("summarizer.timeout", "20s")
	v.SetDefault("history.path", filepath.Join(stateDir, "history.json"))
	v.SetDefault("history.capacity", 10)
	v.SetDefault("session.token_path", filepath.Join(stateDir, "token"))
	v.SetDefault("mockapi.address", ":8000")
	v.SetDefault("mockapi.jwt_secret", "")
	v.SetDefault("mockapi.token_ttl", "24h")

	if path == "" {
		v.AddConfigPath(stateDir)
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("SMARTSUM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
