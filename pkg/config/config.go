package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

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

type VapiConfig struct {
	// BaseURL of the voice assistant provider API.
	BaseURL string `yaml:"base_url"`
	// WebhookURL is the externally reachable webhook address pushed to the
	// assistant when settings carry no serverUrl override.
	WebhookURL string `yaml:"webhook_url"`
}

type Config struct {
	Port     int            `yaml:"port"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Vapi     VapiConfig     `yaml:"vapi"`
}

func defaults() *Config {
	return &Config{
		Port: 3000,
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "orders",
		},
		RabbitMQ: RabbitMQConfig{
			Host:     "localhost",
			Port:     5672,
			User:     "guest",
			Password: "guest",
		},
		Vapi: VapiConfig{
			BaseURL: "https://api.vapi.ai",
		},
	}
}

// LoadConfig builds the configuration from defaults, then an optional YAML
// file, then environment variables. Env always wins over the file.
func LoadConfig(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	envStr("POSTGRES_HOST", &cfg.Database.Host)
	envInt("POSTGRES_PORT", &cfg.Database.Port)
	envStr("POSTGRES_USER", &cfg.Database.User)
	envStr("POSTGRES_PASSWORD", &cfg.Database.Password)
	envStr("POSTGRES_DBNAME", &cfg.Database.Database)

	envStr("RABBITMQ_HOST", &cfg.RabbitMQ.Host)
	envInt("RABBITMQ_PORT", &cfg.RabbitMQ.Port)
	envStr("RABBITMQ_USER", &cfg.RabbitMQ.User)
	envStr("RABBITMQ_PASSWORD", &cfg.RabbitMQ.Password)

	envInt("PORT", &cfg.Port)
	envStr("VAPI_BASE_URL", &cfg.Vapi.BaseURL)
	envStr("VAPI_WEBHOOK_URL", &cfg.Vapi.WebhookURL)
}

func envStr(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
