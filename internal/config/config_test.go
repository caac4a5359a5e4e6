package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME, the config path and the working directory at a
// temp dir so no real .env or config file leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(EnvConfigPath, filepath.Join(dir, "workhours.yaml"))
	for _, k := range []string{EnvDatabase, EnvLocale, EnvCurrency, EnvLanguage} {
		t.Setenv(k, "")
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadNonExistentFile(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ".workhours", "data.db"), cfg.DatabasePath)
	assert.Equal(t, "tr-TR", cfg.Locale)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, 3*time.Second, cfg.NotifyDuration())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileFillsMissingValues(t *testing.T) {
	dir := isolate(t)
	yamlData := "DatabasePath: ~/tracker/hours.db\nCurrency: USD\nLocale: en-US\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "workhours.yaml"), []byte(yamlData), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "tracker", "hours.db"), cfg.DatabasePath)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, "en-US", cfg.Locale)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 3, cfg.NotifySeconds)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "workhours.yaml"), []byte("Locale: [unclosed"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "workhours.yaml"), []byte("Currency: USD\n"), 0o600))
	t.Setenv(EnvCurrency, "GBP")
	t.Setenv(EnvDatabase, filepath.Join(dir, "env.db"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "GBP", cfg.Currency)
	assert.Equal(t, filepath.Join(dir, "env.db"), cfg.DatabasePath)
}

func TestDotEnvIsLoaded(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WORKHOURS_LANG=tr\n"), 0o600))
	// godotenv never overrides variables that are already set.
	os.Unsetenv(EnvLanguage)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "tr", cfg.Language)
	os.Unsetenv(EnvLanguage)
}

func TestSaveAndLoad(t *testing.T) {
	isolate(t)
	cfg := getDefaultConfig()
	cfg.Currency = "CHF"
	cfg.NotifySeconds = 5
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "CHF", loaded.Currency)
	assert.Equal(t, 5, loaded.NotifySeconds)
}

func TestLoadFileIgnoresEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "workhours.yaml"), []byte("Currency: USD\nHistoryPath: ~/h\n"), 0o600))
	t.Setenv(EnvCurrency, "GBP")

	cfg, err := LoadFile()
	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, "~/h", cfg.HistoryPath, "paths are saved back unexpanded")

	cfg.Language = "tr"
	require.NoError(t, Save(cfg))
	data, err := os.ReadFile(Path())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "GBP")
	assert.Contains(t, string(data), "Language: tr")
}

func TestLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, (&Config{}).Level())
	assert.Equal(t, zerolog.DebugLevel, (&Config{LogLevel: "DEBUG"}).Level())
	assert.Equal(t, zerolog.WarnLevel, (&Config{LogLevel: "loud"}).Level())
}

func TestConfigValidation(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DatabasePath:  "/tmp/data.db",
			HistoryPath:   "/tmp/history",
			Locale:        "en-US",
			Currency:      "USD",
			NotifySeconds: 3,
			LogLevel:      "info",
		}
	}

	tests := []struct {
		name  string
		edit  func(c *Config)
		field string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing database", func(c *Config) { c.DatabasePath = "" }, "DatabasePath"},
		{"missing history", func(c *Config) { c.HistoryPath = "" }, "HistoryPath"},
		{"bad currency", func(c *Config) { c.Currency = "EURO" }, "Locale/Currency"},
		{"bad locale", func(c *Config) { c.Locale = "??" }, "Locale/Currency"},
		{"zero notify", func(c *Config) { c.NotifySeconds = 0 }, "NotifySeconds"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.edit(cfg)
			err := cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
