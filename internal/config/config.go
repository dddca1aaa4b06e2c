// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
	Form    FormConfig    `yaml:"form"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	AllowedOrigins  []string `yaml:"allowed_origins"` // empty allows any origin
	ShutdownTimeout string   `yaml:"shutdown_timeout"`
	SecureCookies   bool     `yaml:"secure_cookies"`
}

type SessionConfig struct {
	Backend  string `yaml:"backend"` // memory, redis, postgres
	RedisURL string `yaml:"redis_url"`
	DBUrl    string `yaml:"database_url"`
}

type FormConfig struct {
	QuietPeriod string `yaml:"quiet_period"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: "10s",
		},
		Session: SessionConfig{
			Backend:  BackendMemory,
			RedisURL: "redis://localhost:6379/0",
		},
		Form: FormConfig{
			QuietPeriod: "500ms",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file. A missing file yields the defaults.
// Environment variables override file values either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("LOGIN_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if backend := os.Getenv("SESSION_BACKEND"); backend != "" {
		c.Session.Backend = backend
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		c.Session.RedisURL = url
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.Session.DBUrl = url
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch c.Session.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Session.RedisURL == "" {
			return fmt.Errorf("session.redis_url is required for the redis backend")
		}
	case BackendPostgres:
		if c.Session.DBUrl == "" {
			return fmt.Errorf("session.database_url is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown session.backend %q", c.Session.Backend)
	}
	if _, err := parsePositive(c.Form.QuietPeriod); err != nil {
		return fmt.Errorf("form.quiet_period: %w", err)
	}
	if _, err := parsePositive(c.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("server.shutdown_timeout: %w", err)
	}
	return nil
}

func parsePositive(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", s)
	}
	return d, nil
}

// GetQuietPeriod returns the debounce quiet period, 500ms if unset or invalid.
func (c *Config) GetQuietPeriod() time.Duration {
	if d, err := parsePositive(c.Form.QuietPeriod); err == nil {
		return d
	}
	return 500 * time.Millisecond
}

func (c *Config) GetShutdownTimeout() time.Duration {
	if d, err := parsePositive(c.Server.ShutdownTimeout); err == nil {
		return d
	}
	return 10 * time.Second
}
