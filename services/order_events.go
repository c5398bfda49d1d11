package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// OrderEvent is the payload published when an order is created or its status
// changes. Publishing is best-effort and never fails the originating request.
type OrderEvent struct {
	Event       string    `json:"event"` // "order.created" or "order.status_changed"
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	Timestamp   time.Time `json:"timestamp"`
}

// OrderEventPublisher publishes order lifecycle events.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}

// KafkaOrderEventPublisher publishes order events to a Kafka topic.
type KafkaOrderEventPublisher struct {
	writer *kafka.Writer
}

func NewKafkaOrderEventPublisher(brokers []string, topic string) *KafkaOrderEventPublisher {
	return &KafkaOrderEventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *KafkaOrderEventPublisher) Publish(ctx context.Context, event OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
}

func (p *KafkaOrderEventPublisher) Close() error {
	return p.writer.Close()
}
