package gateways

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	protocols "github.com/giovaniif/device-rental/protocols"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type EventPublisherKafka struct {
	writer MessageWriter
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func NewEventPublisherKafka(writer MessageWriter) *EventPublisherKafka {
	return &EventPublisherKafka{writer: writer}
}

// Publish keys messages by reservation id so every event of one reservation
// lands on the same partition, in order.
func (p *EventPublisherKafka) Publish(ctx context.Context, event protocols.ReservationEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ReservationId),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}
