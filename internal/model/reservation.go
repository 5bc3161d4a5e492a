package model

import "time"

// ReservationStatus is the lifecycle stage of a table reservation.  Exactly
// one status holds at any time; changes only follow the edges declared in
// reservationTransitions.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// reservationTransitions lists the legal next statuses for each status.
// completed and cancelled are terminal and therefore have no entry.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// AllStatuses returns every status in lifecycle order.
func AllStatuses() []ReservationStatus {
	return []ReservationStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
}

// ParseReservationStatus reports whether s names a known status.
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	st := ReservationStatus(s)
	return st, st.Valid()
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is accepted from s.
func (s ReservationStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a legal edge.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, n := range reservationTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// Reservation is a request to occupy seating at a restaurant on a given
// date and time.  Reservations are never deleted; cancellation is a status.
//
// Fields:
//
//	ID              – generated UUID.
//	RestaurantID    – restaurant being booked.
//	UserID          – account that made the booking (nil for imported rows).
//	CustomerName    – guest contact name.
//	CustomerEmail   – guest contact email.
//	CustomerPhone   – guest contact phone (optional).
//	Date            – restaurant-local date, YYYY-MM-DD.
//	Time            – restaurant-local time, HH:MM.
//	Guests          – party size, 1..seating capacity.
//	Status          – lifecycle status.
//	SpecialRequests – free-form notes (optional).
type Reservation struct {
	ID              string            `json:"id"`
	RestaurantID    string            `json:"restaurant_id"`
	UserID          *uint64           `json:"user_id,omitempty"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerPhone   string            `json:"customer_phone,omitempty"`
	Date            string            `json:"date"`
	Time            string            `json:"time"`
	Guests          int               `json:"guests"`
	Status          ReservationStatus `json:"status"`
	SpecialRequests string            `json:"special_requests,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ReservationDraft carries the caller-supplied fields of a new reservation.
type ReservationDraft struct {
	RestaurantID    string
	UserID          *uint64
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Date            string
	Time            string
	Guests          int
	SpecialRequests string
}

// ReservationFilter is a conjunction of optional predicates.  Zero values
// disable a predicate.  Keyword is matched case-insensitively as a substring
// of the customer name or email.
type ReservationFilter struct {
	Status       ReservationStatus
	Keyword      string
	RestaurantID string
	UserID       *uint64
	Date         string
}

// StatusChange is one row of a reservation's append-only status history.
// From is empty for the row written at creation.
type StatusChange struct {
	ReservationID string            `json:"reservation_id"`
	From          ReservationStatus `json:"from,omitempty"`
	To            ReservationStatus `json:"to"`
	ChangedBy     string            `json:"changed_by,omitempty"`
	ChangedAt     time.Time         `json:"changed_at"`
}
