package repository

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/table-reservation/internal/model"
)

// ReservationRepo stores table reservations and their status history.
// Reservations are never deleted; cancellation is a status.  Timestamps
// are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// transitionAttempts bounds how often a status change is retried after a
// concurrent writer changed the status between read and update.
const transitionAttempts = 3

const reservationCols = `id, restaurant_id, user_id, customer_name, customer_email, customer_phone,
	res_date, res_time, guests, status, special_requests, created_at, updated_at`

func scanReservation(s rowScanner) (model.Reservation, error) {
	var (
		res    model.Reservation
		userID sql.NullInt64
	)
	err := s.Scan(&res.ID, &res.RestaurantID, &userID, &res.CustomerName, &res.CustomerEmail,
		&res.CustomerPhone, &res.Date, &res.Time, &res.Guests, &res.Status, &res.SpecialRequests,
		&res.CreatedAt, &res.UpdatedAt)
	if userID.Valid {
		uid := uint64(userID.Int64)
		res.UserID = &uid
	}
	return res, err
}

func validateDraft(d *model.ReservationDraft) error {
	d.RestaurantID = strings.TrimSpace(d.RestaurantID)
	d.CustomerName = strings.TrimSpace(d.CustomerName)
	d.CustomerEmail = strings.TrimSpace(d.CustomerEmail)
	d.CustomerPhone = strings.TrimSpace(d.CustomerPhone)
	d.Date = strings.TrimSpace(d.Date)
	d.Time = strings.TrimSpace(d.Time)
	d.SpecialRequests = strings.TrimSpace(d.SpecialRequests)

	if d.RestaurantID == "" {
		return invalid("restaurant_id", "required")
	}
	if d.CustomerName == "" {
		return invalid("customer_name", "required")
	}
	if d.CustomerEmail == "" {
		return invalid("customer_email", "required")
	}
	if _, err := mail.ParseAddress(d.CustomerEmail); err != nil {
		return invalid("customer_email", "malformed")
	}
	if d.Date == "" {
		return invalid("date", "required")
	}
	if _, err := time.Parse("2006-01-02", d.Date); err != nil {
		return invalid("date", "must be YYYY-MM-DD")
	}
	if d.Time == "" {
		return invalid("time", "required")
	}
	if _, err := time.Parse("15:04", d.Time); err != nil || len(d.Time) != 5 {
		return invalid("time", "must be HH:MM")
	}
	if d.Guests < 1 {
		return invalid("guests", "must be at least 1")
	}
	return nil
}

// Create stores a new pending reservation together with its first history
// row.  It fails with a ValidationError for malformed drafts,
// ErrUnknownRestaurant when the restaurant does not exist and a
// CapacityError when the party exceeds the seating capacity.  Nothing is
// written on failure.
func (r *ReservationRepo) Create(ctx context.Context, d model.ReservationDraft, actor string) (model.Reservation, error) {
	if err := validateDraft(&d); err != nil {
		return model.Reservation{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Reservation{}, err
	}
	committed := false
	defer rollback(tx, &committed)

	var capacity int
	err = tx.QueryRowContext(ctx,
		"SELECT seating_capacity FROM restaurants WHERE id = ?", d.RestaurantID).Scan(&capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, ErrUnknownRestaurant
	}
	if err != nil {
		return model.Reservation{}, err
	}
	if d.Guests > capacity {
		return model.Reservation{}, &CapacityError{Guests: d.Guests, Capacity: capacity}
	}

	now := nowUTC()
	res := model.Reservation{
		ID:              uuid.NewString(),
		RestaurantID:    d.RestaurantID,
		UserID:          d.UserID,
		CustomerName:    d.CustomerName,
		CustomerEmail:   d.CustomerEmail,
		CustomerPhone:   d.CustomerPhone,
		Date:            d.Date,
		Time:            d.Time,
		Guests:          d.Guests,
		Status:          model.StatusPending,
		SpecialRequests: d.SpecialRequests,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	var userID sql.NullInt64
	if res.UserID != nil {
		userID = sql.NullInt64{Int64: int64(*res.UserID), Valid: true}
	}
	const ins = `INSERT INTO reservations
		(id, restaurant_id, user_id, customer_name, customer_email, customer_phone,
		 res_date, res_time, guests, status, special_requests, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`
	if _, err := tx.ExecContext(ctx, ins, res.ID, res.RestaurantID, userID, res.CustomerName,
		res.CustomerEmail, res.CustomerPhone, res.Date, res.Time, res.Guests, string(res.Status),
		res.SpecialRequests, res.CreatedAt, res.UpdatedAt); err != nil {
		return model.Reservation{}, err
	}
	if err := insertHistory(ctx, tx, res.ID, "", res.Status, actor, now); err != nil {
		return model.Reservation{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Reservation{}, err
	}
	committed = true
	return res, nil
}

func insertHistory(ctx context.Context, tx *sql.Tx, id string, from, to model.ReservationStatus, actor string, at time.Time) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO reservation_status_history
		(reservation_id, from_status, to_status, changed_by, changed_at) VALUES (?,?,?,?,?)`,
		id, string(from), string(to), actor, at)
	return err
}

// Transition moves a reservation to next.  It returns ErrNotFound for an
// unknown id and a TransitionError when the state machine has no edge from
// the current status to next; in both cases nothing changes.  The update is
// conditional on the status read in the same transaction, so two
// concurrent transitions can never both apply from the same status.
func (r *ReservationRepo) Transition(ctx context.Context, id string, next model.ReservationStatus, actor string) (model.Reservation, error) {
	if !next.Valid() {
		return model.Reservation{}, invalid("status", "unknown status")
	}
	for attempt := 0; attempt < transitionAttempts; attempt++ {
		applied, err := r.tryTransition(ctx, id, next, actor)
		if err != nil {
			return model.Reservation{}, err
		}
		if applied {
			return r.GetByID(ctx, id)
		}
	}
	return model.Reservation{}, ErrConflict
}

// tryTransition reports false when the status changed underneath it.
func (r *ReservationRepo) tryTransition(ctx context.Context, id string, next model.ReservationStatus, actor string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	committed := false
	defer rollback(tx, &committed)

	var cur model.ReservationStatus
	err = tx.QueryRowContext(ctx, "SELECT status FROM reservations WHERE id = ?", id).Scan(&cur)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}
	if !cur.CanTransitionTo(next) {
		return false, &TransitionError{From: cur, To: next}
	}

	now := nowUTC()
	res, err := tx.ExecContext(ctx,
		"UPDATE reservations SET status = ?, updated_at = ? WHERE id = ? AND status = ?",
		string(next), now, id, string(cur))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	if err := insertHistory(ctx, tx, id, cur, next, actor, now); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	committed = true
	return true, nil
}

// GetByID returns ErrNotFound for an unknown id.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (model.Reservation, error) {
	res, err := scanReservation(r.db.QueryRowContext(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, ErrNotFound
	}
	return res, err
}

// Query returns reservations matching every set predicate of f, in
// insertion order.
func (r *ReservationRepo) Query(ctx context.Context, f model.ReservationFilter) ([]model.Reservation, error) {
	var w whereClause
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		p := containsPattern(kw)
		w.add("(LOWER(customer_name) LIKE ? ESCAPE '!' OR LOWER(customer_email) LIKE ? ESCAPE '!')", p, p)
	}
	if f.RestaurantID != "" {
		w.add("restaurant_id = ?", f.RestaurantID)
	}
	if f.UserID != nil {
		w.add("user_id = ?", int64(*f.UserID))
	}
	if f.Date != "" {
		w.add("res_date = ?", f.Date)
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+reservationCols+" FROM reservations"+w.String()+" ORDER BY seq", w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Count returns the number of stored reservations.
func (r *ReservationRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reservations").Scan(&n)
	return n, err
}

// History returns the status changes of a reservation, oldest first.
func (r *ReservationRepo) History(ctx context.Context, id string) ([]model.StatusChange, error) {
	ok, err := exists(ctx, r.db, "SELECT 1 FROM reservations WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	rows, err := r.db.QueryContext(ctx, `SELECT reservation_id, from_status, to_status, changed_by, changed_at
		FROM reservation_status_history WHERE reservation_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.StatusChange{}
	for rows.Next() {
		var c model.StatusChange
		if err := rows.Scan(&c.ReservationID, &c.From, &c.To, &c.ChangedBy, &c.ChangedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
