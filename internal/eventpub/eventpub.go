// Package eventpub publishes domain events to Kafka.
package eventpub

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes JSON-encoded events to Kafka topics.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher returns a publisher writing to the given brokers. The
// topic is chosen per message.
func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish writes one event to the topic.
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, event interface{}) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: value,
	})
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events. Used when no brokers are configured.
type NoopPublisher struct{}

// Publish logs the event at debug level and discards it.
func (NoopPublisher) Publish(ctx context.Context, topic string, event interface{}) error {
	zerolog.Ctx(ctx).Debug().Str("topic", topic).Interface("event", event).Msg("event dropped, no brokers configured")
	return nil
}
