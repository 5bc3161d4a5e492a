package queue

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Publisher delivers reservation events to a broker.
type Publisher interface {
	Publish(ctx context.Context, ev ReservationEvent) error
	Close() error
}

// Broker names accepted by NewPublisher.
const (
	BrokerNone     = "none"
	BrokerRabbitMQ = "rabbitmq"
	BrokerKafka    = "kafka"
)

// PublisherConfig selects and configures a broker.
type PublisherConfig struct {
	Broker       string
	RabbitURL    string
	KafkaBrokers []string
	Topic        string
}

// NewPublisher returns the publisher for cfg.Broker.  An empty broker name
// means events are dropped.
func NewPublisher(cfg PublisherConfig) (Publisher, error) {
	topic := cfg.Topic
	if topic == "" {
		topic = DefaultTopic
	}
	switch strings.ToLower(cfg.Broker) {
	case "", BrokerNone:
		return NopPublisher{}, nil
	case BrokerRabbitMQ:
		return NewRabbitPublisher(cfg.RabbitURL, topic), nil
	case BrokerKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("kafka publisher: no brokers configured")
		}
		return NewKafkaPublisher(cfg.KafkaBrokers, topic), nil
	}
	return nil, fmt.Errorf("unknown event broker %q", cfg.Broker)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ReservationEvent) error { return nil }
func (NopPublisher) Close() error                                    { return nil }

// MemoryPublisher keeps published events in memory.  Tests and the CLI
// use it to observe what a request emitted.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []ReservationEvent
	Err    error // returned from Publish when set
}

func (m *MemoryPublisher) Publish(_ context.Context, ev ReservationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.events = append(m.events, ev)
	return nil
}

func (m *MemoryPublisher) Close() error { return nil }

// Events returns a copy of everything published so far.
func (m *MemoryPublisher) Events() []ReservationEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ReservationEvent(nil), m.events...)
}
