package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Client конфигурация клиента синхронизации
type Client struct {
	ServerURL    string        `yaml:"server_url"`
	DBPath       string        `yaml:"db_path"`
	LogLevel     string        `yaml:"log_level"`
	RetryBase    time.Duration `yaml:"retry_base_delay"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
	HTTPTimeout  time.Duration `yaml:"http_timeout"`
	MaxRetries   int           `yaml:"max_retries"`
}

// DefaultClient возвращает конфигурацию клиента по умолчанию
func DefaultClient() *Client {
	return &Client{
		ServerURL:    "http://localhost:8080",
		DBPath:       "meetsync-client.db",
		LogLevel:     "WARN",
		RetryBase:    time.Second,
		ProbeTimeout: 3 * time.Second,
		HTTPTimeout:  30 * time.Second,
		MaxRetries:   3,
	}
}

// LoadClient читает конфигурацию клиента: значения по умолчанию,
// затем YAML файл (если path не пустой), затем переменные окружения.
// Флаги командной строки применяются вызывающим кодом поверх результата.
func LoadClient(path string) (*Client, error) {
	_ = godotenv.Load()

	cfg := DefaultClient()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// файл конфигурации необязателен
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
			}
		}
	}

	cfg.ServerURL = getEnv("MEETSYNC_SERVER_URL", cfg.ServerURL)
	cfg.DBPath = getEnv("MEETSYNC_CLIENT_DB", cfg.DBPath)
	cfg.LogLevel = getEnv("MEETSYNC_LOG_LEVEL", cfg.LogLevel)
	cfg.RetryBase = getEnvDuration("MEETSYNC_RETRY_BASE_DELAY", cfg.RetryBase)
	cfg.ProbeTimeout = getEnvDuration("MEETSYNC_PROBE_TIMEOUT", cfg.ProbeTimeout)
	cfg.HTTPTimeout = getEnvDuration("MEETSYNC_HTTP_TIMEOUT", cfg.HTTPTimeout)
	cfg.MaxRetries = getEnvInt("MEETSYNC_MAX_RETRIES", cfg.MaxRetries)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет параметры клиента
func (c *Client) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("%w: server url is required", ErrInvalidConfig)
	}
	if c.DBPath == "" {
		return fmt.Errorf("%w: client db path is required", ErrInvalidConfig)
	}
	if c.RetryBase <= 0 {
		return fmt.Errorf("%w: retry base delay must be positive", ErrInvalidConfig)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries must not be negative", ErrInvalidConfig)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: http timeout must be positive", ErrInvalidConfig)
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("%w: probe timeout must be positive", ErrInvalidConfig)
	}
	return nil
}
