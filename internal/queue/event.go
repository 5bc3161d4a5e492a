// Package queue carries reservation events to a message broker and back.
// Publishers exist for RabbitMQ and Kafka; the RabbitMQ consumer appends
// every event to the booking log.
package queue

import (
	"time"

	"github.com/iliyamo/table-reservation/internal/model"
)

// Event types.
const (
	EventReservationCreated       = "reservation.created"
	EventReservationStatusChanged = "reservation.status_changed"
)

// DefaultTopic is the RabbitMQ queue and Kafka topic name.
const DefaultTopic = "reservation.events"

// ReservationEvent is published after a reservation is created or changes
// status.  It holds enough for consumers to log or notify without reading
// the database.
type ReservationEvent struct {
	Type           string                  `json:"type"`
	ReservationID  string                  `json:"reservation_id"`
	RestaurantID   string                  `json:"restaurant_id"`
	RestaurantName string                  `json:"restaurant_name,omitempty"`
	UserID         *uint64                 `json:"user_id,omitempty"`
	CustomerName   string                  `json:"customer_name"`
	Date           string                  `json:"date"`
	Time           string                  `json:"time"`
	Guests         int                     `json:"guests"`
	From           model.ReservationStatus `json:"from,omitempty"`
	Status         model.ReservationStatus `json:"status"`
	Actor          string                  `json:"actor,omitempty"`
	OccurredAt     string                  `json:"occurred_at"`
}

func newEvent(typ string, res model.Reservation, actor string) ReservationEvent {
	return ReservationEvent{
		Type:          typ,
		ReservationID: res.ID,
		RestaurantID:  res.RestaurantID,
		UserID:        res.UserID,
		CustomerName:  res.CustomerName,
		Date:          res.Date,
		Time:          res.Time,
		Guests:        res.Guests,
		Status:        res.Status,
		Actor:         actor,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

// CreatedEvent describes a freshly booked reservation.
func CreatedEvent(res model.Reservation, restaurantName, actor string) ReservationEvent {
	ev := newEvent(EventReservationCreated, res, actor)
	ev.RestaurantName = restaurantName
	return ev
}

// StatusChangedEvent describes a transition from `from` to res.Status.
func StatusChangedEvent(res model.Reservation, from model.ReservationStatus, actor string) ReservationEvent {
	ev := newEvent(EventReservationStatusChanged, res, actor)
	ev.From = from
	return ev
}
