package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment override, for example
// TEXTDIGEST_SUMMARIZER_PERCENTAGE.
const EnvPrefix = "TEXTDIGEST_"

// SummarizerConfig selects and configures the summarizer.
type SummarizerConfig struct {
	Type       string `yaml:"type" env:"TYPE"`
	Enabled    bool   `yaml:"enabled" env:"ENABLED"`
	Percentage int    `yaml:"percentage" env:"PERCENTAGE"`
	Keywords   int    `yaml:"keywords" env:"KEYWORDS"`
}

// HumanizerConfig configures transcript cleanup.
type HumanizerConfig struct {
	ParagraphSentences int  `yaml:"paragraph_sentences" env:"PARAGRAPH_SENTENCES"`
	Readability        bool `yaml:"readability" env:"READABILITY"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string `yaml:"addr" env:"ADDR"`
	ReadTimeoutSecs int    `yaml:"read_timeout_secs" env:"READ_TIMEOUT_SECS"`
}

// WatcherConfig configures the transcript inbox.
type WatcherConfig struct {
	Input         string `yaml:"input" env:"INPUT"`
	Output        string `yaml:"output" env:"OUTPUT"`
	MaxConcurrent int    `yaml:"max_concurrent" env:"MAX_CONCURRENT"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Summarizer SummarizerConfig `yaml:"summarizer" envPrefix:"SUMMARIZER_"`
	Humanizer  HumanizerConfig  `yaml:"humanizer" envPrefix:"HUMANIZER_"`
	Server     ServerConfig     `yaml:"server" envPrefix:"SERVER_"`
	Watcher    WatcherConfig    `yaml:"watcher" envPrefix:"WATCHER_"`
	Logging    LoggingConfig    `yaml:"logging" envPrefix:"LOGGING_"`
}

// Load reads a config from a specified path. If the file does not exist,
// defaults are used. Environment overrides are applied in both cases.
func Load(path string) (*AppConfig, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	applyConfigDefaults(cfg)
	return cfg, nil
}

// LoadDefault tries ./textdigest.yaml first, then ~/.config/textdigest/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "textdigest.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err != nil {
		if err := Save(userPath, defaultConfig()); err != nil {
			return nil, "", err
		}
	}
	cfg, err := Load(userPath)
	return cfg, userPath, err
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects values the pipeline cannot run with.
func (c *AppConfig) Validate() error {
	switch c.Summarizer.Type {
	case "frequency":
	default:
		return fmt.Errorf("summarizer.type %q is not supported", c.Summarizer.Type)
	}
	if c.Summarizer.Percentage < 1 || c.Summarizer.Percentage > 100 {
		return fmt.Errorf("summarizer.percentage must be between 1 and 100, got %d", c.Summarizer.Percentage)
	}
	if c.Summarizer.Keywords < 1 {
		return fmt.Errorf("summarizer.keywords must be positive, got %d", c.Summarizer.Keywords)
	}
	if c.Humanizer.ParagraphSentences < 1 {
		return fmt.Errorf("humanizer.paragraph_sentences must be positive, got %d", c.Humanizer.ParagraphSentences)
	}
	if c.Watcher.MaxConcurrent < 1 {
		return fmt.Errorf("watcher.max_concurrent must be positive, got %d", c.Watcher.MaxConcurrent)
	}
	if filepath.Clean(c.Watcher.Input) == filepath.Clean(c.Watcher.Output) {
		return fmt.Errorf("watcher.input and watcher.output must differ, both are %q", c.Watcher.Input)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "textdigest", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Summarizer: SummarizerConfig{Type: "frequency", Enabled: true, Percentage: 30, Keywords: 10},
		Humanizer:  HumanizerConfig{ParagraphSentences: 4, Readability: true},
		Server:     ServerConfig{Addr: ":8080", ReadTimeoutSecs: 10},
		Watcher:    WatcherConfig{Input: "data/input", Output: "data/output", MaxConcurrent: 2},
		Logging:    LoggingConfig{Level: "info", Format: "text"},
	}
}

// applyConfigDefaults fills values a partial YAML file may have zeroed.
func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Summarizer.Type == "" {
		cfg.Summarizer.Type = "frequency"
	}
	if cfg.Humanizer.ParagraphSentences == 0 {
		cfg.Humanizer.ParagraphSentences = 4
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeoutSecs == 0 {
		cfg.Server.ReadTimeoutSecs = 10
	}
	if cfg.Watcher.MaxConcurrent == 0 {
		cfg.Watcher.MaxConcurrent = 2
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}
