package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaConfig holds Kafka/Redpanda producer settings
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
}

// KafkaPublisher emits lifecycle records to a Kafka topic using franz-go.
// Records are keyed by tenant ID so per-tenant ordering is preserved.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafkaPublisher creates a new KafkaPublisher
func NewKafkaPublisher(cfg *KafkaConfig) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(cfg.ClientID),
		kgo.DefaultProduceTopic(cfg.Topic),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}
	return &KafkaPublisher{client: client, topic: cfg.Topic}, nil
}

// Publish emits a record asynchronously. Delivery failures surface through
// the produce callback and are dropped; the door must keep scanning even when
// the broker is down.
func (p *KafkaPublisher) Publish(ctx context.Context, rec *Record) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(rec.TenantID),
		Value: value,
	}
	p.client.Produce(ctx, record, nil)
	return nil
}

// Close flushes outstanding records and closes the client
func (p *KafkaPublisher) Close() {
	_ = p.client.Flush(context.Background())
	p.client.Close()
}
