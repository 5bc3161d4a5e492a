package queue

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iliyamo/table-reservation/internal/logger"
	"github.com/iliyamo/table-reservation/internal/model"
)

func sampleReservation() model.Reservation {
	return model.Reservation{
		ID: "r-1", RestaurantID: "rest-1", CustomerName: "Ada", Date: "2025-06-01",
		Time: "19:30", Guests: 4, Status: model.StatusPending,
	}
}

func TestFormatLogLine(t *testing.T) {
	created := CreatedEvent(sampleReservation(), "La Bella Vista", "tourist:ada@example.com")
	line := FormatLogLine(created)
	for _, want := range []string{"Reservation created", "reservation_id=r-1", `restaurant="La Bella Vista"`, "guests=4"} {
		if !strings.Contains(line, want) {
			t.Errorf("created line %q missing %q", line, want)
		}
	}

	res := sampleReservation()
	res.Status = model.StatusConfirmed
	changed := StatusChangedEvent(res, model.StatusPending, "admin:root@example.com")
	line = FormatLogLine(changed)
	for _, want := range []string{"Reservation confirmed", "from=pending", "to=confirmed", `restaurant="rest-1"`} {
		if !strings.Contains(line, want) {
			t.Errorf("changed line %q missing %q", line, want)
		}
	}
	if !strings.HasSuffix(line, "\n") || strings.Count(line, "\n") != 1 {
		t.Errorf("line must be a single newline-terminated line: %q", line)
	}
}

func TestConsumerHandleAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "booking.log")
	c := &BookingLogConsumer{LogPath: path, Log: logger.Nop()}

	for _, ev := range []ReservationEvent{
		CreatedEvent(sampleReservation(), "", "test"),
		StatusChangedEvent(sampleReservation(), model.StatusPending, "test"),
	} {
		body, _ := json.Marshal(ev)
		if err := c.Handle(body); err != nil {
			t.Fatalf("Handle: %v", err)
		}
	}
	if err := c.Handle([]byte("{not json")); err == nil {
		t.Fatalf("expected error for malformed body")
	}
	if err := c.Handle([]byte(`{"guests":2}`)); err == nil {
		t.Fatalf("expected error for event without id")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Fatalf("log has %d lines, want 2:\n%s", n, data)
	}
}

func TestNewPublisher(t *testing.T) {
	p, err := NewPublisher(PublisherConfig{})
	if err != nil {
		t.Fatalf("NewPublisher: %v", err)
	}
	if _, ok := p.(NopPublisher); !ok {
		t.Fatalf("default publisher = %T, want NopPublisher", p)
	}
	if err := p.Publish(context.Background(), ReservationEvent{}); err != nil {
		t.Fatalf("nop publish: %v", err)
	}

	if _, err := NewPublisher(PublisherConfig{Broker: BrokerKafka}); err == nil {
		t.Fatalf("kafka without brokers must fail")
	}
	kp, err := NewPublisher(PublisherConfig{Broker: BrokerKafka, KafkaBrokers: []string{"localhost:9092"}})
	if err != nil {
		t.Fatalf("kafka publisher: %v", err)
	}
	if _, ok := kp.(*KafkaPublisher); !ok {
		t.Fatalf("kafka publisher = %T", kp)
	}
	_ = kp.Close()

	rp, err := NewPublisher(PublisherConfig{Broker: "RabbitMQ"})
	if err != nil {
		t.Fatalf("rabbit publisher: %v", err)
	}
	if r, ok := rp.(*RabbitPublisher); !ok || r.queue != DefaultTopic {
		t.Fatalf("rabbit publisher = %#v", rp)
	}

	if _, err := NewPublisher(PublisherConfig{Broker: "nats"}); err == nil {
		t.Fatalf("unknown broker must fail")
	}
}

func TestMemoryPublisher(t *testing.T) {
	m := &MemoryPublisher{}
	_ = m.Publish(context.Background(), ReservationEvent{Type: EventReservationCreated})
	if got := m.Events(); len(got) != 1 || got[0].Type != EventReservationCreated {
		t.Fatalf("Events = %+v", got)
	}
	m.Err = errors.New("down")
	if err := m.Publish(context.Background(), ReservationEvent{}); err == nil {
		t.Fatalf("expected configured error")
	}
}
