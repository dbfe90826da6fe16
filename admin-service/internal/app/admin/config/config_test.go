package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend.Kind)
	assert.True(t, cfg.Backend.MockSeed)
	assert.Zero(t, cfg.Backend.MockLatency)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "admin_events", cfg.Kafka.Topic)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "@every 1h", cfg.CouponExpirySchedule)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	// Arrange
	t.Setenv("ADMIN_BACKEND", "HTTP")
	t.Setenv("MOCK_LATENCY", "150")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MOCK_SEED", "false")

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, BackendHTTP, cfg.Backend.Kind)
	assert.Equal(t, 150*time.Millisecond, cfg.Backend.MockLatency)
	assert.False(t, cfg.Backend.MockSeed)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown backend", "ADMIN_BACKEND", "mongo"},
		{"bad latency", "MOCK_LATENCY", "soon"},
		{"bad redis db", "REDIS_DB", "first"},
		{"bad cache ttl", "CACHE_TTL", "1 hour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestAddresses(t *testing.T) {
	server := ServerConfig{Host: "0.0.0.0", Port: "8085"}
	redis := RedisConfig{Host: "cache", Port: "6379"}
	db := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "admin", SSLMode: "disable"}

	assert.Equal(t, "0.0.0.0:8085", server.Address())
	assert.Equal(t, "cache:6379", redis.Address())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=admin sslmode=disable", db.DSN())
}
