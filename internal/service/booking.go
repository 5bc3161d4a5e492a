package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/table-reservation/internal/logger"
	"github.com/iliyamo/table-reservation/internal/metrics"
	"github.com/iliyamo/table-reservation/internal/model"
	"github.com/iliyamo/table-reservation/internal/queue"
	"github.com/iliyamo/table-reservation/internal/repository"
)

// publishTimeout bounds event delivery after the request has been served.
const publishTimeout = 3 * time.Second

// BookingRequest is what a tourist submits to book a table.  Empty contact
// fields fall back to the caller's account.
type BookingRequest struct {
	RestaurantID    string
	Date            string
	Time            string
	Guests          int
	Name            string
	Email           string
	Phone           string
	SpecialRequests string
}

type BookingService struct {
	Catalog      *repository.CatalogRepo
	Reservations *repository.ReservationRepo
	Events       queue.Publisher
	Metrics      *metrics.ReservationMetrics // optional
	Log          *logger.Logger
}

func NewBookingService(c *repository.CatalogRepo, r *repository.ReservationRepo, p queue.Publisher,
	m *metrics.ReservationMetrics, l *logger.Logger) *BookingService {
	return &BookingService{Catalog: c, Reservations: r, Events: p, Metrics: m, Log: l}
}

// Book creates a pending reservation for a tourist.  It fails with
// ErrForbidden for non-tourist callers, ErrUnknownRestaurant, a
// CapacityError or a ValidationError; nothing is stored on failure.
// Double bookings of the same slot are not detected.
func (s *BookingService) Book(ctx context.Context, id model.Identity, req BookingRequest) (model.Reservation, error) {
	if !id.Role.Traveller() {
		return model.Reservation{}, repository.ErrForbidden
	}
	rest, err := s.Catalog.GetRestaurant(ctx, req.RestaurantID)
	if err != nil {
		s.rejected(err)
		return model.Reservation{}, err
	}
	if req.Guests > rest.SeatingCapacity {
		err := &repository.CapacityError{Guests: req.Guests, Capacity: rest.SeatingCapacity}
		s.rejected(err)
		return model.Reservation{}, err
	}

	d := model.ReservationDraft{
		RestaurantID:    rest.ID,
		CustomerName:    firstNonEmpty(req.Name, id.Name),
		CustomerEmail:   firstNonEmpty(req.Email, id.Email),
		CustomerPhone:   req.Phone,
		Date:            req.Date,
		Time:            req.Time,
		Guests:          req.Guests,
		SpecialRequests: req.SpecialRequests,
	}
	if id.UserID != 0 {
		uid := id.UserID
		d.UserID = &uid
	}
	res, err := s.Reservations.Create(ctx, d, id.Actor())
	if err != nil {
		s.rejected(err)
		return model.Reservation{}, err
	}
	if s.Metrics != nil {
		s.Metrics.Created.WithLabelValues(res.RestaurantID).Inc()
	}
	s.Log.Info("reservation_created", "reservation booked",
		"reservation_id", res.ID, "restaurant_id", res.RestaurantID, "guests", res.Guests)
	publish(ctx, s.Events, s.Metrics, s.Log, queue.CreatedEvent(res, rest.Name, id.Actor()))
	return res, nil
}

func (s *BookingService) rejected(err error) {
	if s.Metrics == nil {
		return
	}
	reason := "error"
	switch {
	case errors.Is(err, repository.ErrCapacityExceeded):
		reason = "capacity"
	case errors.Is(err, repository.ErrUnknownRestaurant):
		reason = "unknown_restaurant"
	case errors.Is(err, repository.ErrValidation):
		reason = "validation"
	}
	s.Metrics.Rejected.WithLabelValues(reason).Inc()
}

// publish never fails the caller; a lost event is logged and counted.
func publish(ctx context.Context, p queue.Publisher, m *metrics.ReservationMetrics, l *logger.Logger, ev queue.ReservationEvent) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := p.Publish(ctx, ev); err != nil {
		l.Error("event_publish", "publish reservation event failed", err,
			"type", ev.Type, "reservation_id", ev.ReservationID)
		if m != nil {
			m.PublishErrs.Inc()
		}
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
