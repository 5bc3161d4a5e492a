package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/table-reservation/internal/logger"
)

// BookingLogConsumer appends one line per reservation event to a log file.
type BookingLogConsumer struct {
	URL     string
	Queue   string
	LogPath string
	Log     *logger.Logger

	mu sync.Mutex // serialises file appends
}

// Run consumes until ctx is cancelled, reconnecting with exponential
// backoff when the broker goes away.  Malformed messages are rejected
// without requeue so they cannot loop.
func (c *BookingLogConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.Log.Warn("booking_consumer_dial", "failed to dial broker", "error", err.Error(), "retry_in", backoff.String())
			if !sleep(ctx, backoff) {
				return nil
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return nil
		}
		c.Log.Warn("booking_consumer_loop", "consume loop ended; reconnecting", "error", err.Error())
		if !sleep(ctx, 2*time.Second) {
			return nil
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *BookingLogConsumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.Log.Warn("booking_consumer_qos", "set QoS failed", "error", err.Error())
	}
	if err := declareQueue(ch, c.Queue); err != nil {
		return err
	}
	msgs, err := ch.ConsumeWithContext(ctx, c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.Handle(d.Body); err != nil {
				c.Log.Error("booking_consumer_handle", "handle message failed", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Handle decodes one message body and appends it to the booking log.
func (c *BookingLogConsumer) Handle(body []byte) error {
	var ev ReservationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.ReservationID == "" || ev.Type == "" {
		return errors.New("event without type or reservation id")
	}
	return c.appendLine(FormatLogLine(ev))
}

func (c *BookingLogConsumer) appendLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(c.LogPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLogLine renders ev as a single human-readable line ending in "\n".
func FormatLogLine(ev ReservationEvent) string {
	switch ev.Type {
	case EventReservationCreated:
		return fmt.Sprintf("[%s] Reservation created | reservation_id=%s | restaurant=%q | customer=%q | date=%s | time=%s | guests=%d | by=%s\n",
			ev.OccurredAt, ev.ReservationID, restaurantLabel(ev), ev.CustomerName, ev.Date, ev.Time, ev.Guests, ev.Actor)
	case EventReservationStatusChanged:
		return fmt.Sprintf("[%s] Reservation %s | reservation_id=%s | restaurant=%q | from=%s | to=%s | by=%s\n",
			ev.OccurredAt, ev.Status, ev.ReservationID, restaurantLabel(ev), ev.From, ev.Status, ev.Actor)
	}
	return fmt.Sprintf("[%s] %s | reservation_id=%s | status=%s\n", ev.OccurredAt, ev.Type, ev.ReservationID, ev.Status)
}

func restaurantLabel(ev ReservationEvent) string {
	if ev.RestaurantName != "" {
		return ev.RestaurantName
	}
	return ev.RestaurantID
}
