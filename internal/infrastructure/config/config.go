package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ConveyorConfig holds settings for the outbound conveyor client.
type ConveyorConfig struct {
	BaseURL        string
	TimeoutSeconds int
	MaxRetries     int
	RetryBackoffMs int
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// KafkaConfig holds broker settings for event publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Config is the full service configuration, loaded from the environment.
type Config struct {
	HTTPPort      int
	MetricsPort   int
	DB            DatabaseConfig
	Kafka         KafkaConfig
	Conveyor      ConveyorConfig
	LogLevel      string
	LogFormat     string
	MigrationsDir string
	ServiceName   string
}

// Load reads configuration from environment variables with development
// defaults.
func Load() Config {
	return Config{
		HTTPPort:    getEnvInt("HTTP_PORT", 8085),
		MetricsPort: getEnvInt("METRICS_PORT", 9085),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "deal"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "deal"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "deal.events"),
		},
		Conveyor: ConveyorConfig{
			BaseURL:        getEnv("CONVEYOR_URL", "http://localhost:8086"),
			TimeoutSeconds: getEnvInt("CONVEYOR_TIMEOUT_SECONDS", 10),
			MaxRetries:     getEnvInt("CONVEYOR_MAX_RETRIES", 3),
			RetryBackoffMs: getEnvInt("CONVEYOR_RETRY_BACKOFF_MS", 200),
		},
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", ""),
		ServiceName:   "deal-service",
	}
}

// Validate panics on configuration that cannot possibly work.
func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
}

// HTTPAddr returns the listen address for the deal API.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// MetricsAddr returns the listen address for the metrics endpoint.
func (c Config) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.MetricsPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
