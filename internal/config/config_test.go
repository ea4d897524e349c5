package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultServerURL, cfg.Server)
	assert.Zero(t, cfg.PageSize)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, DefaultCacheTTLSeconds, cfg.Cache.TTLSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, cfg.Server)
}

func TestLoad_FileValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	content := `server: https://dw.example.com
api_key: sk-test
page_size: 25
cache:
  enabled: false
  ttl_seconds: 120
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://dw.example.com", cfg.Server)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, 25, cfg.PageSize)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 120, cfg.Cache.TTLSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [broken"), 0600))

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.yaml"),
		[]byte("server: https://file.example.com\npage_size: 25\n"),
		0600,
	))
	t.Setenv(EnvServer, "https://env.example.com")
	t.Setenv(EnvPageSize, "50")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Server)
	assert.Equal(t, 50, cfg.PageSize)
}

func TestApplyEnv_MalformedValuesIgnored(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())
	t.Setenv(EnvPageSize, "not-a-number")
	t.Setenv(EnvCacheTTL, "-5")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Zero(t, cfg.PageSize)
	assert.Equal(t, DefaultCacheTTLSeconds, cfg.Cache.TTLSeconds)
}

func TestApplyEnv_PageSizeBounds(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())
	t.Setenv(EnvPageSize, "5000")

	cfg, err := Load()

	require.NoError(t, err)
	// Out-of-range env values are ignored, not clamped.
	assert.Zero(t, cfg.PageSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "explicit page size", mutate: func(c *Config) { c.PageSize = 50 }},
		{name: "page size too large", mutate: func(c *Config) { c.PageSize = MaxPageSize + 1 }, wantErr: true},
		{name: "negative page size", mutate: func(c *Config) { c.PageSize = -1 }, wantErr: true},
		{name: "negative ttl", mutate: func(c *Config) { c.Cache.TTLSeconds = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestResolvePageSize_Explicit(t *testing.T) {
	cfg := Default()
	cfg.PageSize = 42
	assert.Equal(t, 42, cfg.ResolvePageSize(-1))
}

func TestResolvePageSize_NonTerminalDefault(t *testing.T) {
	// An invalid fd is not a terminal, so the short default applies.
	cfg := Default()
	assert.Equal(t, DefaultPageSize, cfg.ResolvePageSize(-1))
}
