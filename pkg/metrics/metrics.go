package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Пример PromQL: rate(http_requests_total{service="admin-service"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Метрики хранилища (memory / http / postgres backend)
// =============================================================================

// StoreOperationDuration - время операций репозиториев
// Labels: backend (memory|http|postgres), operation (get_all, get, create, update, delete), entity
var StoreOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "store_operation_duration_seconds",
		Help:    "Duration of backend store operations in seconds",
		Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	},
	[]string{"service", "backend", "operation", "entity"},
)

var StoreErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "store_errors_total",
		Help: "Total number of backend store errors",
	},
	[]string{"service", "backend", "operation", "entity"},
)

// =============================================================================
// Redis метрики
// =============================================================================

var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"},
)

var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka метрики
// =============================================================================

var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Бизнес-метрики админки
// =============================================================================

// CascadeDeletes - дочерние записи, удалённые каскадом вместе с родителем
// Labels: entity - тип удалённой дочерней записи (product_variant, variant_attribute, review_image)
var CascadeDeletes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "admin_cascade_deletes_total",
		Help: "Total number of child records removed by cascade deletes",
	},
	[]string{"entity"},
)

// CouponsExpired - купоны, деактивированные cron-задачей по истечении validTo
var CouponsExpired = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "admin_coupons_expired_total",
		Help: "Total number of coupons deactivated after validTo passed",
	},
)

// EntityMutations - создания/обновления/удаления по типам сущностей
var EntityMutations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "admin_entity_mutations_total",
		Help: "Total number of entity mutations",
	},
	[]string{"entity", "action"}, // action: created, updated, deleted
)
