package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults は設定ファイルがない場合にデフォルト値が使われることを検証します。
func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "analytic", cfg.Ephemeris.Provider)
	assert.Equal(t, "lahiri", cfg.Ephemeris.Ayanamsa)
	assert.Equal(t, 10*time.Second, cfg.Ephemeris.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
	assert.Empty(t, cfg.Redis.Host)
	assert.False(t, cfg.Gemini.Enabled)
}

// TestLoad_EnvOverrides は ASTRO_ 接頭辞の環境変数が設定値を上書きすることを検証します。
func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ASTRO_SERVER_PORT", "9090")
	t.Setenv("ASTRO_EPHEMERIS_PROVIDER", "remote")
	t.Setenv("ASTRO_EPHEMERIS_BASE_URL", "http://ephemeris.local")
	t.Setenv("ASTRO_REDIS_TTL", "15m")
	t.Setenv("ASTRO_JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "remote", cfg.Ephemeris.Provider)
	assert.Equal(t, "http://ephemeris.local", cfg.Ephemeris.BaseURL)
	assert.Equal(t, 15*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
}

// TestLoadFromFile はYAMLファイルの値が読み込まれ、環境変数がそれより優先されることを検証します。
func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "astro.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  driver: postgres
  host: db.internal
ephemeris:
  ayanamsa: fagan_bradley
logging:
  format: json
`), 0o600))
	t.Setenv("ASTRO_DATABASE_HOST", "override.internal")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "override.internal", cfg.Database.Host)
	assert.Equal(t, "fagan_bradley", cfg.Ephemeris.Ayanamsa)
	assert.Equal(t, "json", cfg.Logging.Format)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// TestConfig_Validate は起動できない設定の組み合わせを検証します。
func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			Server:    ServerConfig{Port: 8080},
			Database:  DatabaseConfig{Driver: "sqlite"},
			Ephemeris: EphemerisConfig{Provider: "analytic"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"mysql driver", func(c *Config) { c.Database.Driver = "mysql" }, "unsupported database driver"},
		{"remote without url", func(c *Config) { c.Ephemeris.Provider = "remote" }, "base_url is required"},
		{"unknown provider", func(c *Config) { c.Ephemeris.Provider = "swiss" }, "unsupported ephemeris provider"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "invalid server port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// TestLoggingConfig_NewLogger はログレベルが設定から反映されることを検証します。
func TestLoggingConfig_NewLogger(t *testing.T) {
	t.Parallel()

	logger := LoggingConfig{Level: "warn", Format: "json"}.NewLogger()
	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelWarn))

	fallback := LoggingConfig{Level: "verbose"}.NewLogger()
	assert.True(t, fallback.Enabled(t.Context(), slog.LevelInfo))
}
