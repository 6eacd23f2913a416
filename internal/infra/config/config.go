package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Predictor PredictorConfig `yaml:"predictor"`
	Enums     EnumsConfig     `yaml:"enums"`
	Form      FormConfig      `yaml:"form"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// PredictorConfig points at the price-class prediction service.
type PredictorConfig struct {
	DefaultAPIURL string `yaml:"defaultApiUrl"`
	// AllowedHosts limits which hosts a submitted api_url may point at. Empty allows any.
	AllowedHosts []string `yaml:"allowedHosts"`
	// Timeout bounds each prediction call. Zero means no client-side timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// EnumsConfig controls where select options come from and how long they are cached.
type EnumsConfig struct {
	// BaseURL is the service publishing /enums/{kind}. Empty disables fetching.
	BaseURL  string        `yaml:"baseUrl"`
	CacheTTL time.Duration `yaml:"cacheTtl"`
	// Timeout bounds each enum fetch so a slow service cannot stall page renders.
	Timeout time.Duration `yaml:"timeout"`
	Redis   RedisConfig   `yaml:"redis"`
}

// RedisConfig contains connection information for cache storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// FormConfig controls the signed token embedded in the HTML form.
type FormConfig struct {
	TokenSecret string        `yaml:"tokenSecret"`
	TokenTTL    time.Duration `yaml:"tokenTtl"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("PREDICTOR_API_URL"); v != "" {
		cfg.Predictor.DefaultAPIURL = v
	}
	if v := os.Getenv("PREDICTOR_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Predictor.Timeout = parsed
		}
	}
	if v := os.Getenv("PREDICTOR_ALLOWED_HOSTS"); v != "" {
		cfg.Predictor.AllowedHosts = splitList(v)
	}
	if v, ok := os.LookupEnv("ENUMS_BASE_URL"); ok {
		cfg.Enums.BaseURL = v
	}
	if v := os.Getenv("ENUMS_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Enums.CacheTTL = parsed
		}
	}
	if v := os.Getenv("ENUMS_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Enums.Timeout = parsed
		}
	}
	if v := os.Getenv("ENUMS_REDIS_ENABLED"); v != "" {
		cfg.Enums.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("ENUMS_REDIS_ADDR"); v != "" {
		cfg.Enums.Redis.Addr = v
	}
	if v := os.Getenv("FORM_TOKEN_SECRET"); v != "" {
		cfg.Form.TokenSecret = v
	}
	if v := os.Getenv("FORM_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Form.TokenTTL = parsed
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 0,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Predictor: PredictorConfig{
			DefaultAPIURL: "http://127.0.0.1:8000",
		},
		Enums: EnumsConfig{
			BaseURL:  "http://127.0.0.1:8000",
			CacheTTL: 10 * time.Minute,
			Timeout:  2 * time.Second,
		},
		Form: FormConfig{
			TokenTTL: 2 * time.Hour,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if err := validateURL("predictor.defaultApiUrl", c.Predictor.DefaultAPIURL, true); err != nil {
		return err
	}
	if c.Predictor.Timeout < 0 {
		return errors.New("predictor.timeout cannot be negative")
	}
	if err := validateURL("enums.baseUrl", c.Enums.BaseURL, false); err != nil {
		return err
	}
	if c.Enums.CacheTTL < 0 {
		return errors.New("enums.cacheTtl cannot be negative")
	}
	if c.Enums.Timeout <= 0 {
		return errors.New("enums.timeout must be positive")
	}
	if c.Enums.Redis.Enabled && strings.TrimSpace(c.Enums.Redis.Addr) == "" {
		return errors.New("enums.redis.addr cannot be empty when redis cache is enabled")
	}
	if strings.TrimSpace(c.Form.TokenSecret) != "" && c.Form.TokenTTL <= 0 {
		return errors.New("form.tokenTtl must be positive when a token secret is set")
	}
	return nil
}

func validateURL(field, raw string, required bool) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("%s must be an absolute http(s) url", field)
	}
	return nil
}
