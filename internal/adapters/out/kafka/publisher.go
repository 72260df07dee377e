// Package kafka relays outbox messages to Kafka. The aggregate id is the message
// key so the events of one aggregate stay ordered within their partition.
package kafka

import (
	"context"
	"time"

	"freight/internal/core/ports"

	skafka "github.com/segmentio/kafka-go"
)

// Writer is the part of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

var _ ports.EventPublisher = (*Publisher)(nil)

type Publisher struct {
	writer Writer
	topic  string
}

func NewPublisher(brokers []string, topic string) *Publisher {
	w := &skafka.Writer{
		Addr:                   skafka.TCP(brokers...),
		Balancer:               &skafka.Hash{},
		RequiredAcks:           skafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return NewPublisherWithWriter(w, topic)
}

func NewPublisherWithWriter(w Writer, topic string) *Publisher {
	return &Publisher{writer: w, topic: topic}
}

// Publish writes messages in one batch. The batch fails as a whole; the relay
// retries it on its next run.
func (p *Publisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}
	batch := make([]skafka.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, skafka.Message{
			Topic: p.topic,
			Key:   []byte(m.AggregateID.String()),
			Value: m.Payload,
			Time:  m.OccurredAt,
			Headers: []skafka.Header{
				{Key: "event-id", Value: []byte(m.ID.String())},
				{Key: "event-type", Value: []byte(m.EventType)},
				{Key: "aggregate-type", Value: []byte(m.AggregateType)},
			},
		})
	}
	return p.writer.WriteMessages(ctx, batch...)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
