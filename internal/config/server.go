// Package config загружает конфигурацию сервера и клиента из .env,
// переменных окружения и YAML файла.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
)

// Драйверы хранилища сервера
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Границы размера пакета синхронизации
const (
	MinBatchSize = 1
	MaxBatchSize = 5000
)

// ErrInvalidConfig indicates that configuration values are inconsistent
var ErrInvalidConfig = errors.New("invalid configuration")

// Server конфигурация сервера синхронизации
type Server struct {
	Addr        string
	DBDriver    string
	DBPath      string
	DatabaseURL string
	JWTSecret   string
	RedisURL    string // пусто - лимитер в памяти
	AMQPURL     string // пусто - уведомления отключены
	LogLevel    string
	LogFormat   string
	AccessTTL   time.Duration
	RateWindow  time.Duration
	RateLimit   int
	MaxBatch    int
}

// LoadServer читает конфигурацию сервера. Отсутствующий .env игнорируется.
func LoadServer() (*Server, error) {
	_ = godotenv.Load()

	maxBatch := getEnvInt("MEETSYNC_MAX_BATCH", 500)
	if maxBatch > MaxBatchSize {
		slog.Warn("MEETSYNC_MAX_BATCH exceeds safety limit. Clamping to maximum", "requested", maxBatch, "limit", MaxBatchSize)
		maxBatch = MaxBatchSize
	} else if maxBatch < MinBatchSize {
		maxBatch = MinBatchSize
	}

	cfg := &Server{
		Addr:        getEnv("MEETSYNC_ADDR", ":8080"),
		DBDriver:    getEnv("MEETSYNC_DB_DRIVER", DriverSQLite),
		DBPath:      getEnv("MEETSYNC_DB_PATH", "meetsync.db"),
		DatabaseURL: getEnv("MEETSYNC_DATABASE_URL", ""),
		JWTSecret:   getEnv("MEETSYNC_JWT_SECRET", ""),
		RedisURL:    getEnv("MEETSYNC_REDIS_URL", ""),
		AMQPURL:     getEnv("MEETSYNC_AMQP_URL", ""),
		LogLevel:    getEnv("MEETSYNC_LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("MEETSYNC_LOG_FORMAT", "TEXT"),
		AccessTTL:   getEnvDuration("MEETSYNC_ACCESS_TTL", 24*time.Hour),
		RateLimit:   getEnvInt("MEETSYNC_RATE_LIMIT", 60),
		RateWindow:  getEnvDuration("MEETSYNC_RATE_WINDOW", time.Minute),
		MaxBatch:    maxBatch,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность параметров
func (c *Server) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("%w: MEETSYNC_DB_PATH is required for sqlite", ErrInvalidConfig)
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: MEETSYNC_DATABASE_URL is required for postgres", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown MEETSYNC_DB_DRIVER %q", ErrInvalidConfig, c.DBDriver)
	}

	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("%w: MEETSYNC_JWT_SECRET must be at least 16 bytes", ErrInvalidConfig)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("%w: MEETSYNC_RATE_LIMIT must be positive", ErrInvalidConfig)
	}
	// Окно делит время в миллисекундах при построении ключа лимитера
	if c.RateWindow < time.Millisecond {
		return fmt.Errorf("%w: MEETSYNC_RATE_WINDOW must be at least 1ms", ErrInvalidConfig)
	}
	if c.AccessTTL <= 0 {
		return fmt.Errorf("%w: MEETSYNC_ACCESS_TTL must be positive", ErrInvalidConfig)
	}
	return nil
}
