package infrastructure

import (
	"context"
	"time"
)

// Cache интерфейс для кеша списков (Redis)
// Используется для dependency injection и упрощения тестирования
type Cache interface {
	// GetJSON декодирует значение в dest; false - промах кеша
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// MessagePublisher интерфейс для отправки событий в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// NoopCache используется когда Redis выключен: всегда промах
type NoopCache struct{}

func (NoopCache) GetJSON(context.Context, string, interface{}) (bool, error) { return false, nil }
func (NoopCache) SetJSON(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (NoopCache) Delete(context.Context, ...string) error { return nil }
func (NoopCache) Close() error                            { return nil }

// NoopPublisher используется когда Kafka выключена
type NoopPublisher struct{}

func (NoopPublisher) PublishMessage(context.Context, string, []byte) error { return nil }
func (NoopPublisher) Close() error                                         { return nil }
