package messaging

import (
	"context"
	"fmt"
	"time"

	"beautyadmin/admin-service/internal/app/admin/infrastructure"
	"beautyadmin/pkg/logger"
	"beautyadmin/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

const serviceName = "admin-service"

var _ infrastructure.MessagePublisher = (*KafkaProducer)(nil)

// KafkaProducer отправляет события изменения сущностей админки в топик admin_events
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaProducer создает producer; соединение с брокерами устанавливается лениво при первой отправке
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		// ключ "<kind>:<id>", события одной записи попадают в одну партицию
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 50 * time.Millisecond,
		ErrorLogger:  kafka.LoggerFunc(logger.Printf),
	}

	return &KafkaProducer{writer: writer, topic: topic}
}

// PublishMessage отправляет одно сообщение
func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	timer := metrics.NewKafkaProduceTimer(serviceName, p.topic)

	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		timer.Error()
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	timer.Success()
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
