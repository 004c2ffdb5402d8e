package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loanforge/deal-service/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, 8085, cfg.HTTPPort)
	assert.Equal(t, ":8085", cfg.HTTPAddr())
	assert.Equal(t, ":9085", cfg.MetricsAddr())
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "deal.events", cfg.Kafka.Topic)
	assert.Equal(t, "http://localhost:8086", cfg.Conveyor.BaseURL)
	assert.Equal(t, 3, cfg.Conveyor.MaxRetries)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "deal-service", cfg.ServiceName)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CONVEYOR_URL", "http://conveyor:8080")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := config.Load()

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "http://conveyor:8080", cfg.Conveyor.BaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")

	cfg := config.Load()
	assert.Equal(t, 8085, cfg.HTTPPort)
}

func TestValidate_RequiresPassword(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")

	cfg := config.Load()
	assert.Panics(t, func() { cfg.Validate() })

	t.Setenv("DB_PASSWORD", "secret")
	cfg = config.Load()
	assert.NotPanics(t, func() { cfg.Validate() })
}
