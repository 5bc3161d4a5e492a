package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/table-reservation/internal/database"
	"github.com/iliyamo/table-reservation/internal/model"
)

// CatalogRepo stores restaurants and their menu items.  Listings are
// returned in insertion order.
type CatalogRepo struct{ db *sql.DB }

// NewCatalogRepo constructs a CatalogRepo using the provided database handle.
func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

const restaurantCols = `id, name, description, cuisine, address, phone, price_tier, rating,
	seating_capacity, image_url, external_ref, created_at, updated_at`

func scanRestaurant(s rowScanner) (model.Restaurant, error) {
	var r model.Restaurant
	err := s.Scan(&r.ID, &r.Name, &r.Description, &r.Cuisine, &r.Address, &r.Phone,
		&r.PriceTier, &r.Rating, &r.SeatingCapacity, &r.ImageURL, &r.ExternalRef,
		&r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// SearchRestaurants returns restaurants whose name or description contains
// keyword (case-insensitive).  cuisine "" or "all" matches every cuisine;
// anything else must equal the cuisine tag, ignoring case.
func (r *CatalogRepo) SearchRestaurants(ctx context.Context, keyword, cuisine string) ([]model.Restaurant, error) {
	var w whereClause
	if kw := strings.TrimSpace(keyword); kw != "" {
		p := containsPattern(kw)
		w.add("(LOWER(name) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", p, p)
	}
	if !isWildcard(cuisine) {
		w.add("LOWER(cuisine) = ?", strings.ToLower(strings.TrimSpace(cuisine)))
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+restaurantCols+" FROM restaurants"+w.String()+" ORDER BY seq", w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}

// GetRestaurant returns ErrUnknownRestaurant when id does not exist.
func (r *CatalogRepo) GetRestaurant(ctx context.Context, id string) (model.Restaurant, error) {
	rest, err := scanRestaurant(r.db.QueryRowContext(ctx,
		"SELECT "+restaurantCols+" FROM restaurants WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Restaurant{}, ErrUnknownRestaurant
	}
	return rest, err
}

func validateRestaurant(rest *model.Restaurant) error {
	rest.Name = strings.TrimSpace(rest.Name)
	rest.Cuisine = strings.TrimSpace(rest.Cuisine)
	switch {
	case rest.Name == "":
		return invalid("name", "required")
	case rest.Cuisine == "":
		return invalid("cuisine", "required")
	case !rest.PriceTier.Valid():
		return invalid("price_tier", "must be $ to $$$$")
	case rest.Rating < 0 || rest.Rating > 5:
		return invalid("rating", "must be between 0 and 5")
	case rest.SeatingCapacity <= 0:
		return invalid("seating_capacity", "must be positive")
	}
	return nil
}

// CreateRestaurant inserts a restaurant.  An empty ID is replaced by a new
// UUID; a supplied ID that is already taken yields ErrConflict.
func (r *CatalogRepo) CreateRestaurant(ctx context.Context, rest model.Restaurant) (model.Restaurant, error) {
	if err := validateRestaurant(&rest); err != nil {
		return model.Restaurant{}, err
	}
	if strings.TrimSpace(rest.ID) == "" {
		rest.ID = uuid.NewString()
	}
	now := nowUTC()
	rest.CreatedAt, rest.UpdatedAt = now, now
	_, err := r.db.ExecContext(ctx, `INSERT INTO restaurants
		(id, name, description, cuisine, address, phone, price_tier, rating,
		 seating_capacity, image_url, external_ref, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rest.ID, rest.Name, rest.Description, rest.Cuisine, rest.Address, rest.Phone,
		uint8(rest.PriceTier), rest.Rating, rest.SeatingCapacity, rest.ImageURL, rest.ExternalRef,
		rest.CreatedAt, rest.UpdatedAt)
	if err != nil {
		if database.IsDuplicateKey(err) {
			return model.Restaurant{}, ErrConflict
		}
		return model.Restaurant{}, err
	}
	return rest, nil
}

// UpdateRestaurant replaces every mutable field of the restaurant matched
// by rest.ID.  The identity and creation time are preserved.
func (r *CatalogRepo) UpdateRestaurant(ctx context.Context, rest model.Restaurant) (model.Restaurant, error) {
	if err := validateRestaurant(&rest); err != nil {
		return model.Restaurant{}, err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Restaurant{}, err
	}
	committed := false
	defer rollback(tx, &committed)

	if err := tx.QueryRowContext(ctx,
		"SELECT created_at FROM restaurants WHERE id = ?", rest.ID).Scan(&rest.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Restaurant{}, ErrUnknownRestaurant
		}
		return model.Restaurant{}, err
	}
	rest.UpdatedAt = nowUTC()
	if _, err := tx.ExecContext(ctx, `UPDATE restaurants SET name = ?, description = ?, cuisine = ?,
		address = ?, phone = ?, price_tier = ?, rating = ?, seating_capacity = ?, image_url = ?,
		external_ref = ?, updated_at = ? WHERE id = ?`,
		rest.Name, rest.Description, rest.Cuisine, rest.Address, rest.Phone, uint8(rest.PriceTier),
		rest.Rating, rest.SeatingCapacity, rest.ImageURL, rest.ExternalRef, rest.UpdatedAt, rest.ID); err != nil {
		return model.Restaurant{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Restaurant{}, err
	}
	committed = true
	return rest, nil
}

// DeleteRestaurant removes a restaurant that owns no menu items and has no
// reservations.  Otherwise it fails with ErrConflict and nothing changes.
func (r *CatalogRepo) DeleteRestaurant(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer rollback(tx, &committed)

	ok, err := exists(ctx, tx, "SELECT 1 FROM restaurants WHERE id = ?", id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownRestaurant
	}
	var items, reservations int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM menu_items WHERE restaurant_id = ?", id).Scan(&items); err != nil {
		return err
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservations WHERE restaurant_id = ?", id).Scan(&reservations); err != nil {
		return err
	}
	if items > 0 || reservations > 0 {
		return ErrConflict
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM restaurants WHERE id = ?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
