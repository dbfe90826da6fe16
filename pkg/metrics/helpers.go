package metrics

import (
	"time"
)

type RedisOperation string

const (
	RedisOpGet RedisOperation = "get"
	RedisOpSet RedisOperation = "set"
	RedisOpDel RedisOperation = "del"
)

type RedisTimer struct {
	service   string
	operation RedisOperation
	start     time.Time
}

func NewRedisTimer(service string, op RedisOperation) *RedisTimer {
	return &RedisTimer{
		service:   service,
		operation: op,
		start:     time.Now(),
	}
}

func (rt *RedisTimer) ObserveDuration() {
	RedisOperationDuration.WithLabelValues(rt.service, string(rt.operation)).Observe(time.Since(rt.start).Seconds())
}

func RecordCacheHit(service, keyPrefix string) {
	RedisCacheHits.WithLabelValues(service, keyPrefix).Inc()
}

func RecordCacheMiss(service, keyPrefix string) {
	RedisCacheMisses.WithLabelValues(service, keyPrefix).Inc()
}

func RecordRedisError(service string, op RedisOperation) {
	RedisErrors.WithLabelValues(service, string(op)).Inc()
}

type KafkaProduceTimer struct {
	service string
	topic   string
	start   time.Time
}

func NewKafkaProduceTimer(service, topic string) *KafkaProduceTimer {
	return &KafkaProduceTimer{
		service: service,
		topic:   topic,
		start:   time.Now(),
	}
}

func (kt *KafkaProduceTimer) Success() {
	KafkaMessagesProduced.WithLabelValues(kt.service, kt.topic).Inc()
	KafkaProduceDuration.WithLabelValues(kt.service, kt.topic).Observe(time.Since(kt.start).Seconds())
}

func (kt *KafkaProduceTimer) Error() {
	KafkaErrors.WithLabelValues(kt.service, kt.topic, "produce").Inc()
}

type StoreOperation string

const (
	StoreOpGetAll StoreOperation = "get_all"
	StoreOpGet    StoreOperation = "get"
	StoreOpCreate StoreOperation = "create"
	StoreOpUpdate StoreOperation = "update"
	StoreOpDelete StoreOperation = "delete"
)

// StoreTimer замеряет операцию репозитория; Done учитывает ошибку, если она есть
type StoreTimer struct {
	service   string
	backend   string
	operation StoreOperation
	entity    string
	start     time.Time
}

func NewStoreTimer(service, backend string, op StoreOperation, entity string) *StoreTimer {
	return &StoreTimer{
		service:   service,
		backend:   backend,
		operation: op,
		entity:    entity,
		start:     time.Now(),
	}
}

func (st *StoreTimer) Done(err error) {
	StoreOperationDuration.WithLabelValues(st.service, st.backend, string(st.operation), st.entity).
		Observe(time.Since(st.start).Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(st.service, st.backend, string(st.operation), st.entity).Inc()
	}
}

func RecordCascadeDelete(entity string) {
	CascadeDeletes.WithLabelValues(entity).Inc()
}

func RecordMutation(entity, action string) {
	EntityMutations.WithLabelValues(entity, action).Inc()
}
