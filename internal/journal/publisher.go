package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/wonny/dayan/internal/contracts"
)

// Publisher fans recorded reports out to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, r *contracts.DayanReport) error
	Close() error
}

// NopPublisher drops everything
type NopPublisher struct{}

// Publish implements Publisher
func (NopPublisher) Publish(context.Context, *contracts.DayanReport) error { return nil }

// Close implements Publisher
func (NopPublisher) Close() error { return nil }

// KafkaPublisher writes one message per report, keyed by report ID
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a synchronous writer on topic
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

// Publish implements Publisher
func (p *KafkaPublisher) Publish(ctx context.Context, r *contracts.DayanReport) error {
	msg, err := Message(r)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish %s: %w", r.ID, err)
	}
	return nil
}

// Close flushes and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Message builds the Kafka message of r
func Message(r *contracts.DayanReport) (kafka.Message, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal report: %w", err)
	}
	return kafka.Message{
		Key:   []byte(r.ID),
		Value: body,
		Time:  r.Instant,
		Headers: []kafka.Header{
			{Key: "site", Value: []byte(r.Site.Name)},
			{Key: "term", Value: []byte(r.Calculation.CurrentTermName)},
			{Key: "gua", Value: []byte(r.DailyGua.Hexagram.Name)},
		},
	}, nil
}
