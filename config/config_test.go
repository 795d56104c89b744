package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/pokedex/pokeapi"
)

func validConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: pokeapi.DefaultBaseURL,
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Size:       128,
			SpriteSize: 64,
			FilterSize: 32,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: "api.base_url is required",
		},
		{
			name:    "base url without scheme",
			mutate:  func(c *Config) { c.API.BaseURL = "pokeapi.co/api/v2" },
			wantErr: "api.base_url must be an http(s) URL",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.API.Timeout = 0 },
			wantErr: "api.timeout must be positive",
		},
		{
			name:    "zero cache size",
			mutate:  func(c *Config) { c.Cache.Size = 0 },
			wantErr: "cache.size must be at least 1",
		},
		{
			name:    "zero sprite cache size",
			mutate:  func(c *Config) { c.Cache.SpriteSize = 0 },
			wantErr: "cache.sprite_size must be at least 1",
		},
		{
			name:    "empty named filter",
			mutate:  func(c *Config) { c.Filter = FilterConfig{"kanto": " "} },
			wantErr: `filter "kanto" has an empty expression`,
		},
		{
			name:    "invalid level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level: verbose",
		},
		{
			name:    "invalid format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  base_url: http://localhost:8000/api/v2
  timeout: 5s
cache:
  size: 16
filter:
  kanto: "ID <= 151"
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api/v2", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 16, cfg.Cache.Size)
	assert.Equal(t, pokeapi.DefaultSpriteCacheSize, cfg.Cache.SpriteSize)
	assert.Equal(t, "ID <= 151", cfg.Filter["kanto"])
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
}

func TestLoadDefaultsWithEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("POKEDEX_CACHE_SIZE", "7")
	t.Setenv("POKEDEX_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, pokeapi.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, pokeapi.DefaultTimeout, cfg.API.Timeout)
	assert.Equal(t, 7, cfg.Cache.Size)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level: loud")
}
