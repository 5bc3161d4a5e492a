package service

import (
	"context"

	"github.com/iliyamo/table-reservation/internal/logger"
	"github.com/iliyamo/table-reservation/internal/metrics"
	"github.com/iliyamo/table-reservation/internal/model"
	"github.com/iliyamo/table-reservation/internal/queue"
	"github.com/iliyamo/table-reservation/internal/repository"
)

// ReservationService reads and changes reservations on behalf of staff and
// tourists.  Staff see the restaurants they manage; tourists see their own
// bookings and may only cancel them.
type ReservationService struct {
	Reservations *repository.ReservationRepo
	Events       queue.Publisher
	Metrics      *metrics.ReservationMetrics
	Log          *logger.Logger
}

func NewReservationService(r *repository.ReservationRepo, p queue.Publisher,
	m *metrics.ReservationMetrics, l *logger.Logger) *ReservationService {
	return &ReservationService{Reservations: r, Events: p, Metrics: m, Log: l}
}

// ReservationDetail is a reservation with its status history.
type ReservationDetail struct {
	model.Reservation
	History []model.StatusChange `json:"history"`
}

// List applies f within the caller's visibility.  A manager asking for
// another restaurant gets ErrForbidden.
func (s *ReservationService) List(ctx context.Context, id model.Identity, f model.ReservationFilter) ([]model.Reservation, error) {
	switch {
	case id.Role.Traveller():
		uid := id.UserID
		f.UserID = &uid
	case id.Role.Staff():
		scope, err := RestaurantScope(id, f.RestaurantID)
		if err != nil {
			return nil, err
		}
		f.RestaurantID = scope
	default:
		return nil, repository.ErrForbidden
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, &repository.ValidationError{Field: "status", Reason: "unknown status"}
	}
	return s.Reservations.Query(ctx, f)
}

func (s *ReservationService) load(ctx context.Context, id model.Identity, resID string) (model.Reservation, error) {
	res, err := s.Reservations.GetByID(ctx, resID)
	if err != nil {
		return model.Reservation{}, err
	}
	if !canView(id, res) {
		return model.Reservation{}, repository.ErrForbidden
	}
	return res, nil
}

// Get returns one visible reservation with its history.
func (s *ReservationService) Get(ctx context.Context, id model.Identity, resID string) (ReservationDetail, error) {
	res, err := s.load(ctx, id, resID)
	if err != nil {
		return ReservationDetail{}, err
	}
	hist, err := s.Reservations.History(ctx, res.ID)
	if err != nil {
		return ReservationDetail{}, err
	}
	return ReservationDetail{Reservation: res, History: hist}, nil
}

// Transition applies a status change.  Tourists may only cancel.
func (s *ReservationService) Transition(ctx context.Context, id model.Identity, resID string, next model.ReservationStatus) (model.Reservation, error) {
	before, err := s.load(ctx, id, resID)
	if err != nil {
		return model.Reservation{}, err
	}
	if id.Role.Traveller() && next != model.StatusCancelled {
		return model.Reservation{}, repository.ErrForbidden
	}
	res, err := s.Reservations.Transition(ctx, resID, next, id.Actor())
	if err != nil {
		return model.Reservation{}, err
	}
	if s.Metrics != nil {
		s.Metrics.Transitions.WithLabelValues(string(before.Status), string(res.Status)).Inc()
	}
	s.Log.Info("reservation_transition", "reservation status changed",
		"reservation_id", res.ID, "from", string(before.Status), "to", string(res.Status), "by", id.Actor())
	publish(ctx, s.Events, s.Metrics, s.Log, queue.StatusChangedEvent(res, before.Status, id.Actor()))
	return res, nil
}

// Cancel is the tourist-facing shorthand for a transition to cancelled.
func (s *ReservationService) Cancel(ctx context.Context, id model.Identity, resID string) (model.Reservation, error) {
	return s.Transition(ctx, id, resID, model.StatusCancelled)
}
