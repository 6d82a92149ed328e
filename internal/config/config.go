package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = "config.yaml"

// Config represents client configuration loaded from YAML.
type Config struct {
	APIURL         string `yaml:"apiURL"`
	WSURL          string `yaml:"wsURL"`
	MockData       bool   `yaml:"mockData"`
	LogLevel       string `yaml:"logLevel"`
	SessionFile    string `yaml:"sessionFile"`
	RedisAddr      string `yaml:"redisAddr"`
	RedisPassword  string `yaml:"redisPassword"`
	JWTSecret      string `yaml:"jwtSecret"`
	RequestTimeout string `yaml:"requestTimeout"`
	MockLatency    bool   `yaml:"mockLatency"`
}

// Load reads config from path (defaults to config.yaml), applying
// MOVIECAT_* environment overrides on top.
func Load(path string) (Config, error) {
	cfg := Config{}
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	applyEnv(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MOVIECAT_API_URL"); v != "" {
		cfg.APIURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("MOVIECAT_WS_URL"); v != "" {
		cfg.WSURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("MOVIECAT_MOCK_DATA"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.MockData = b
		}
	}
	if v := os.Getenv("MOVIECAT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v := os.Getenv("MOVIECAT_SESSION_FILE"); v != "" {
		cfg.SessionFile = strings.TrimSpace(v)
	}
	if v := os.Getenv("MOVIECAT_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = strings.TrimSpace(v)
	}
	if v := os.Getenv("MOVIECAT_REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("MOVIECAT_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("MOVIECAT_REQUEST_TIMEOUT"); v != "" {
		cfg.RequestTimeout = strings.TrimSpace(v)
	}
	if v := os.Getenv("MOVIECAT_MOCK_LATENCY"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.MockLatency = b
		}
	}
}

func validate(cfg Config) error {
	if !cfg.MockData && strings.TrimSpace(cfg.APIURL) == "" {
		return errors.New("config: apiURL is required when mockData is false")
	}
	if !cfg.MockData && strings.TrimSpace(cfg.WSURL) == "" {
		return errors.New("config: wsURL is required when mockData is false")
	}
	if cfg.MockData && strings.TrimSpace(cfg.JWTSecret) == "" {
		return errors.New("config: jwtSecret is required in mock mode")
	}
	if strings.TrimSpace(cfg.SessionFile) == "" && strings.TrimSpace(cfg.RedisAddr) == "" {
		return errors.New("config: sessionFile or redisAddr is required for session persistence")
	}
	if cfg.RequestTimeout != "" {
		if _, err := time.ParseDuration(cfg.RequestTimeout); err != nil {
			return fmt.Errorf("config: invalid requestTimeout: %w", err)
		}
	}
	return nil
}

// ParseRequestTimeout returns the configured HTTP timeout, defaulting to 15s.
func ParseRequestTimeout(value string) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return 15 * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse requestTimeout: %w", err)
	}
	if d <= 0 {
		return 0, errors.New("requestTimeout must be positive")
	}
	return d, nil
}
