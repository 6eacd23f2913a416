package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, "http://127.0.0.1:8000", cfg.Predictor.DefaultAPIURL)
	require.Zero(t, cfg.Predictor.Timeout)
	require.Equal(t, 10*time.Minute, cfg.Enums.CacheTTL)
	require.Equal(t, 2*time.Second, cfg.Enums.Timeout)
	require.Empty(t, cfg.Predictor.AllowedHosts)
	require.False(t, cfg.Enums.Redis.Enabled)
	require.Empty(t, cfg.Form.TokenSecret)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
  allowedOrigins: ["https://a.example"]
predictor:
  defaultApiUrl: "http://predictor:8000"
  timeout: 15s
enums:
  cacheTtl: 1m
form:
  tokenSecret: "from-file"
  tokenTtl: 30m
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PREDICTOR_API_URL", "https://override.example")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://b.example, https://c.example,")
	t.Setenv("ENUMS_BASE_URL", "")
	t.Setenv("HTTP_RATE_LIMIT_ENABLED", "false")
	t.Setenv("ENUMS_TIMEOUT", "750ms")
	t.Setenv("PREDICTOR_ALLOWED_HOSTS", "predictor:8000, override.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, []string{"https://b.example", "https://c.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, "https://override.example", cfg.Predictor.DefaultAPIURL)
	require.Equal(t, 15*time.Second, cfg.Predictor.Timeout)
	require.Empty(t, cfg.Enums.BaseURL)
	require.Equal(t, time.Minute, cfg.Enums.CacheTTL)
	require.Equal(t, "from-file", cfg.Form.TokenSecret)
	require.Equal(t, 30*time.Minute, cfg.Form.TokenTTL)
	require.False(t, cfg.HTTP.RateLimit.Enabled)
	require.Equal(t, 750*time.Millisecond, cfg.Enums.Timeout)
	require.Equal(t, []string{"predictor:8000", "override.example"}, cfg.Predictor.AllowedHosts)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unclosed"), 0o600))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty address", func(c *Config) { c.HTTP.Address = "" }, "http.address"},
		{"relative api url", func(c *Config) { c.Predictor.DefaultAPIURL = "predictor:8000" }, "predictor.defaultApiUrl"},
		{"empty api url", func(c *Config) { c.Predictor.DefaultAPIURL = " " }, "predictor.defaultApiUrl"},
		{"negative timeout", func(c *Config) { c.Predictor.Timeout = -time.Second }, "predictor.timeout"},
		{"bad enum base", func(c *Config) { c.Enums.BaseURL = "ftp://x" }, "enums.baseUrl"},
		{"zero enum timeout", func(c *Config) { c.Enums.Timeout = 0 }, "enums.timeout"},
		{"redis without addr", func(c *Config) { c.Enums.Redis.Enabled = true }, "enums.redis.addr"},
		{"secret without ttl", func(c *Config) { c.Form.TokenSecret = "s"; c.Form.TokenTTL = 0 }, "form.tokenTtl"},
		{"rate limit burst", func(c *Config) { c.HTTP.RateLimit.Burst = 0 }, "http.rateLimit.burst"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}

	require.NoError(t, defaultConfig().Validate())
}
