package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/workhours/internal/timecalc"
)

// Environment variables that override the config file.
const (
	EnvConfigPath = "WORKHOURS_CONFIG"
	EnvDatabase   = "WORKHOURS_DB"
	EnvLocale     = "WORKHOURS_LOCALE"
	EnvCurrency   = "WORKHOURS_CURRENCY"
	EnvLanguage   = "WORKHOURS_LANG"
)

type Config struct {
	DatabasePath string `yaml:"DatabasePath"`
	HistoryPath  string `yaml:"HistoryPath"`

	// Locale and Currency drive wage formatting, e.g. "tr-TR" and "EUR".
	Locale   string `yaml:"Locale"`
	Currency string `yaml:"Currency"`

	// Language selects the notification texts ("en", "tr").
	Language string `yaml:"Language"`

	NotifySeconds int    `yaml:"NotifySeconds"`
	LogLevel      string `yaml:"LogLevel"`
}

// Load reads the YAML config, applies .env and environment overrides and
// fills defaults for missing values. A missing file yields the defaults.
func Load() (*Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	applyEnv(cfg)
	cfg.DatabasePath = expandHome(cfg.DatabasePath)
	cfg.HistoryPath = expandHome(cfg.HistoryPath)
	return cfg, nil
}

// LoadFile reads the config file merged over the defaults, without
// environment overrides, so the result can be edited and saved back.
func LoadFile() (*Config, error) {
	cfg := getDefaultConfig()
	data, err := os.ReadFile(Path())
	switch {
	case errors.Is(err, os.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, err
	}
	var fromFile Config
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", Path(), err)
	}
	return merge(cfg, &fromFile), nil
}

func Save(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(Path(), data, 0o600)
}

// Path is the config file location, $WORKHOURS_CONFIG or ~/.workhours.yaml.
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".workhours.yaml")
}

func getDefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DatabasePath:  filepath.Join(home, ".workhours", "data.db"),
		HistoryPath:   filepath.Join(home, ".workhours", "history"),
		Locale:        timecalc.DefaultLocale,
		Currency:      timecalc.DefaultCurrency,
		Language:      "en",
		NotifySeconds: 3,
		LogLevel:      "warn",
	}
}

// merge overlays the non-zero fields of over onto base.
func merge(base, over *Config) *Config {
	out := *base
	if over.DatabasePath != "" {
		out.DatabasePath = over.DatabasePath
	}
	if over.HistoryPath != "" {
		out.HistoryPath = over.HistoryPath
	}
	if over.Locale != "" {
		out.Locale = over.Locale
	}
	if over.Currency != "" {
		out.Currency = over.Currency
	}
	if over.Language != "" {
		out.Language = over.Language
	}
	if over.NotifySeconds != 0 {
		out.NotifySeconds = over.NotifySeconds
	}
	if over.LogLevel != "" {
		out.LogLevel = over.LogLevel
	}
	return &out
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv(EnvLocale); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		cfg.Language = v
	}
}

func expandHome(p string) string {
	if strings.HasPrefix(p, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, p[2:])
	}
	return p
}

// NotifyDuration is how long notifications stay up.
func (c *Config) NotifyDuration() time.Duration {
	return time.Duration(c.NotifySeconds) * time.Second
}

// Level returns the configured zerolog level, warn when unset.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || c.LogLevel == "" {
		return zerolog.WarnLevel
	}
	return lvl
}

// CurrencyFormatter builds the wage formatter for this config.
func (c *Config) CurrencyFormatter() (*timecalc.CurrencyFormatter, error) {
	return timecalc.NewCurrencyFormatter(c.Locale, c.Currency)
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s - %s", e.Field, e.Message)
}

// Validate checks the configuration for common issues
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return &ValidationError{Field: "DatabasePath", Message: "Database path is required"}
	}
	if c.HistoryPath == "" {
		return &ValidationError{Field: "HistoryPath", Message: "History path is required"}
	}
	if _, err := c.CurrencyFormatter(); err != nil {
		return &ValidationError{Field: "Locale/Currency", Message: err.Error()}
	}
	if c.NotifySeconds <= 0 {
		return &ValidationError{Field: "NotifySeconds", Message: "Notification duration must be positive"}
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return &ValidationError{Field: "LogLevel", Message: err.Error()}
	}
	return nil
}
