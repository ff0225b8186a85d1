package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultListingsURL is the provider endpoint used when none is configured.
const DefaultListingsURL = "https://www.microburbs.com.au/report_generator/api/suburb/properties"

type Config struct {
	Env    string `yaml:"env"`
	Server struct {
		Port int `yaml:"port" validate:"gt=0,lte=65535"`
	} `yaml:"server"`
	Upstream struct {
		BaseURL        string `yaml:"base_url" validate:"required_without=FixturePath,omitempty,url"`
		Token          string `yaml:"token"`
		TimeoutSeconds int    `yaml:"timeout_seconds" validate:"gte=1,lte=300"`
		FixturePath    string `yaml:"fixture_path"`
	} `yaml:"upstream"`
	Breaker struct {
		Disabled         bool   `yaml:"disabled"`
		MaxRequests      uint32 `yaml:"max_requests" validate:"gte=1"`
		IntervalSeconds  int    `yaml:"interval_seconds" validate:"gte=0"`
		TimeoutSeconds   int    `yaml:"timeout_seconds" validate:"gte=1"`
		FailureThreshold uint32 `yaml:"failure_threshold" validate:"gte=1"`
	} `yaml:"breaker"`
	RateLimit struct {
		RequestsPerMinute float64 `yaml:"requests_per_minute" validate:"gt=0"`
		Burst             int     `yaml:"burst" validate:"gt=0"`
	} `yaml:"rate_limit"`
	Sessions struct {
		TTLMinutes int `yaml:"ttl_minutes" validate:"gte=1"`
	} `yaml:"sessions"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins" validate:"dive,url"`
	} `yaml:"cors"`
	Log struct {
		Level string `yaml:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR debug info warn error"`
	} `yaml:"log"`
}

// UpstreamTimeout returns the outbound request timeout.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}

// SessionTTL returns how long an idle dashboard session is kept.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Sessions.TTLMinutes) * time.Minute
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadConfig reads the YAML file at path (a missing file is not an error),
// applies environment overrides and defaults, then validates the result.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults and environment only
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Override with environment variables if set
func applyEnv(cfg *Config) error {
	if env := os.Getenv("ENV"); env != "" {
		cfg.Env = env
	}
	if port := os.Getenv("PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT value: %w", err)
		}
		cfg.Server.Port = portNum
	}
	if url := os.Getenv("LISTINGS_API_URL"); url != "" {
		cfg.Upstream.BaseURL = url
	}
	if token := os.Getenv("LISTINGS_API_TOKEN"); token != "" {
		cfg.Upstream.Token = token
	}
	if fixture := os.Getenv("LISTINGS_FIXTURE_PATH"); fixture != "" {
		cfg.Upstream.FixturePath = fixture
	}
	if timeout := os.Getenv("LISTINGS_API_TIMEOUT_SECONDS"); timeout != "" {
		seconds, err := strconv.Atoi(timeout)
		if err != nil {
			return fmt.Errorf("invalid LISTINGS_API_TIMEOUT_SECONDS value: %w", err)
		}
		cfg.Upstream.TimeoutSeconds = seconds
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	return nil
}

// Set default values
func applyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5001
	}
	if cfg.Upstream.BaseURL == "" && cfg.Upstream.FixturePath == "" {
		cfg.Upstream.BaseURL = DefaultListingsURL
	}
	if cfg.Upstream.Token == "" {
		cfg.Upstream.Token = "test"
	}
	if cfg.Upstream.TimeoutSeconds == 0 {
		cfg.Upstream.TimeoutSeconds = 30
	}
	if cfg.Breaker.MaxRequests == 0 {
		cfg.Breaker.MaxRequests = 1
	}
	if cfg.Breaker.TimeoutSeconds == 0 {
		cfg.Breaker.TimeoutSeconds = 60
	}
	if cfg.Breaker.FailureThreshold == 0 {
		cfg.Breaker.FailureThreshold = 5
	}
	if cfg.RateLimit.RequestsPerMinute == 0 {
		cfg.RateLimit.RequestsPerMinute = 100
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 10
	}
	if cfg.Sessions.TTLMinutes == 0 {
		cfg.Sessions.TTLMinutes = 30
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "INFO"
	}
}
