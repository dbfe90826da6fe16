package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Источники данных админки
const (
	BackendMemory   = "memory"
	BackendHTTP     = "http"
	BackendPostgres = "postgres"
)

// Config содержит все настройки Admin Service
// Источник данных выбирается один раз при старте (Backend.Kind)
type Config struct {
	Server               ServerConfig
	Log                  LogConfig
	Backend              BackendConfig
	API                  APIConfig
	Database             DatabaseConfig
	Redis                RedisConfig
	Kafka                KafkaConfig
	CouponExpirySchedule string   // Расписание cron для деактивации истёкших купонов
	CORSAllowedOrigins   []string // Разрешённые origin для админ-панели
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host      string
	Port      string
	AuthToken string // Если задан, /api требует "Authorization: Bearer <AuthToken>"
}

type LogConfig struct {
	Level        string
	LogstashAddr string // host:port, пусто - только stdout
}

// BackendConfig - переключатель mock/real API
type BackendConfig struct {
	Kind        string        // memory | http | postgres
	MockLatency time.Duration // Искусственная задержка in-memory хранилища
	MockSeed    bool          // Загружать демо-данные в in-memory хранилище
}

// APIConfig - настройки клиента реального REST API
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	Token   string // Bearer токен, передаётся как есть
}

// DatabaseConfig - настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig - кеш списков категорий и брендов
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// KafkaConfig - события изменения сущностей
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// Load загружает конфигурацию из переменных окружения (и .env, если он есть)
// Возвращает ошибку, если значения не парсятся или backend неизвестен
func Load() (*Config, error) {
	// .env опционален, переменные окружения имеют приоритет
	_ = godotenv.Load()

	mockLatency, err := getEnvDuration("MOCK_LATENCY", 0)
	if err != nil {
		return nil, err
	}
	apiTimeout, err := getEnvDuration("API_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getEnvDuration("CACHE_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:      getEnv("SERVER_HOST", "0.0.0.0"),
			Port:      getEnv("SERVER_PORT", "8085"),
			AuthToken: getEnv("ADMIN_AUTH_TOKEN", ""),
		},
		Log: LogConfig{
			Level:        getEnv("LOG_LEVEL", "info"),
			LogstashAddr: getEnv("LOGSTASH_ADDR", ""),
		},
		Backend: BackendConfig{
			Kind:        strings.ToLower(getEnv("ADMIN_BACKEND", BackendMemory)),
			MockLatency: mockLatency,
			MockSeed:    getEnvBool("MOCK_SEED", true),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
			Timeout: apiTimeout,
			Token:   getEnv("API_TOKEN", ""),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "admin_service"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			TTL:      cacheTTL,
		},
		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Brokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:   getEnv("KAFKA_TOPIC", "admin_events"),
		},
		CouponExpirySchedule: getEnv("COUPON_EXPIRY_SCHEDULE", "@every 1h"),
		CORSAllowedOrigins:   splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	switch cfg.Backend.Kind {
	case BackendMemory, BackendHTTP, BackendPostgres:
	default:
		return nil, fmt.Errorf("invalid ADMIN_BACKEND value %q: expected memory, http or postgres", cfg.Backend.Kind)
	}

	return cfg, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration понимает "250ms", "10s"; голое число трактуется как миллисекунды
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
