package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Backend   BackendConfig   `yaml:"backend"`
	Database  DatabaseConfig  `yaml:"database"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Recorder  RecorderConfig  `yaml:"recorder"`
	DevServer DevServerConfig `yaml:"dev_server"`
}

type BackendConfig struct {
	BaseURL        string        `yaml:"base_url"`
	Timeout        time.Duration `yaml:"timeout"`
	ReconnectDelay time.Duration `yaml:"reconnect_delay"`
	PollInterval   time.Duration `yaml:"poll_interval"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type RecorderConfig struct {
	Publish bool   `yaml:"publish"`
	Journal bool   `yaml:"journal"`
	Name    string `yaml:"name"`
}

type DevServerConfig struct {
	Port           int           `yaml:"port"`
	StreamInterval time.Duration `yaml:"stream_interval"`
	Seed           bool          `yaml:"seed"`
	// Store is "memory" or "postgres".
	Store          string        `yaml:"store"`
	RateLimit      float64       `yaml:"rate_limit"`
	RateBurst      int           `yaml:"rate_burst"`
}

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:        "http://localhost:5000",
			Timeout:        10 * time.Second,
			ReconnectDelay: 3 * time.Second,
			PollInterval:   3 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "restaurant_user",
			Password: "password",
			Database: "restaurant_db",
		},
		RabbitMQ: RabbitMQConfig{
			Host:     "localhost",
			Port:     5672,
			User:     "guest",
			Password: "guest",
		},
		Recorder: RecorderConfig{
			Name: "recorder",
		},
		DevServer: DevServerConfig{
			Port:           5000,
			StreamInterval: 2 * time.Second,
			Seed:           true,
			Store:          StoreMemory,
			RateLimit:      20,
			RateBurst:      40,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.Backend.PollInterval <= 0 {
		return fmt.Errorf("backend.poll_interval must be positive")
	}
	if c.Backend.ReconnectDelay < 0 {
		return fmt.Errorf("backend.reconnect_delay must not be negative")
	}
	if c.DevServer.StreamInterval <= 0 {
		return fmt.Errorf("dev_server.stream_interval must be positive")
	}
	if c.DevServer.RateLimit < 0 {
		return fmt.Errorf("dev_server.rate_limit must not be negative")
	}
	if c.DevServer.Store != StoreMemory && c.DevServer.Store != StorePostgres {
		return fmt.Errorf("dev_server.store must be %q or %q, got %q", StoreMemory, StorePostgres, c.DevServer.Store)
	}
	return nil
}

// ConnString is the libpq keyword/value form accepted by pgxpool.
func (d DatabaseConfig) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Database)
}

func (r RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", r.User, r.Password, r.Host, r.Port)
}
