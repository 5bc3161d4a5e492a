package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/table-reservation/internal/model"
)

const menuItemCols = `id, restaurant_id, name, description, price_cents, category, available,
	created_at, updated_at`

func scanMenuItem(s rowScanner) (model.MenuItem, error) {
	var m model.MenuItem
	err := s.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.PriceCents,
		&m.Category, &m.Available, &m.CreatedAt, &m.UpdatedAt)
	m.Price = float64(m.PriceCents) / 100
	return m, err
}

func (r *CatalogRepo) queryMenuItems(ctx context.Context, w whereClause) ([]model.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+menuItemCols+" FROM menu_items"+w.String()+" ORDER BY seq", w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.MenuItem{}
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SearchMenuItems lists one restaurant's items whose name or description
// contains keyword.  category "" or "all" matches every category.
func (r *CatalogRepo) SearchMenuItems(ctx context.Context, restaurantID, keyword, category string) ([]model.MenuItem, error) {
	ok, err := exists(ctx, r.db, "SELECT 1 FROM restaurants WHERE id = ?", restaurantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownRestaurant
	}
	var w whereClause
	w.add("restaurant_id = ?", restaurantID)
	if kw := strings.TrimSpace(keyword); kw != "" {
		p := containsPattern(kw)
		w.add("(LOWER(name) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", p, p)
	}
	if !isWildcard(category) {
		w.add("category = ?", strings.ToLower(strings.TrimSpace(category)))
	}
	return r.queryMenuItems(ctx, w)
}

// ListMenuItems returns every item, or only one restaurant's items when
// restaurantID is non-empty.  Unknown restaurants simply have no items.
func (r *CatalogRepo) ListMenuItems(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	var w whereClause
	if restaurantID != "" {
		w.add("restaurant_id = ?", restaurantID)
	}
	return r.queryMenuItems(ctx, w)
}

// GetMenuItem returns ErrNotFound for an unknown id.
func (r *CatalogRepo) GetMenuItem(ctx context.Context, id string) (model.MenuItem, error) {
	m, err := scanMenuItem(r.db.QueryRowContext(ctx,
		"SELECT "+menuItemCols+" FROM menu_items WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.MenuItem{}, ErrNotFound
	}
	return m, err
}

func validateMenuItem(m *model.MenuItem) error {
	m.Name = strings.TrimSpace(m.Name)
	m.RestaurantID = strings.TrimSpace(m.RestaurantID)
	switch {
	case m.RestaurantID == "":
		return invalid("restaurant_id", "required")
	case m.Name == "":
		return invalid("name", "required")
	case m.PriceCents < 0:
		return invalid("price", "must not be negative")
	case !m.Category.Valid():
		return invalid("category", "must be appetizer, main, dessert or beverage")
	}
	return nil
}

// UpsertMenuItem creates the item when it carries no ID and otherwise
// replaces the stored item with the same ID.  Updating an unknown ID fails
// with ErrNotFound; moving an item to another restaurant is rejected.
func (r *CatalogRepo) UpsertMenuItem(ctx context.Context, m model.MenuItem) (model.MenuItem, error) {
	if err := validateMenuItem(&m); err != nil {
		return model.MenuItem{}, err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.MenuItem{}, err
	}
	committed := false
	defer rollback(tx, &committed)

	ok, err := exists(ctx, tx, "SELECT 1 FROM restaurants WHERE id = ?", m.RestaurantID)
	if err != nil {
		return model.MenuItem{}, err
	}
	if !ok {
		return model.MenuItem{}, ErrUnknownRestaurant
	}

	now := nowUTC()
	m.UpdatedAt = now
	if strings.TrimSpace(m.ID) == "" {
		m.ID = uuid.NewString()
		m.CreatedAt = now
		_, err = tx.ExecContext(ctx, `INSERT INTO menu_items
			(id, restaurant_id, name, description, price_cents, category, available, created_at, updated_at)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			m.ID, m.RestaurantID, m.Name, m.Description, m.PriceCents, string(m.Category), m.Available,
			m.CreatedAt, m.UpdatedAt)
	} else {
		var owner string
		err = tx.QueryRowContext(ctx,
			"SELECT restaurant_id, created_at FROM menu_items WHERE id = ?", m.ID).Scan(&owner, &m.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return model.MenuItem{}, ErrNotFound
		}
		if err != nil {
			return model.MenuItem{}, err
		}
		if owner != m.RestaurantID {
			return model.MenuItem{}, invalid("restaurant_id", "cannot move an item to another restaurant")
		}
		_, err = tx.ExecContext(ctx, `UPDATE menu_items SET name = ?, description = ?, price_cents = ?,
			category = ?, available = ?, updated_at = ? WHERE id = ?`,
			m.Name, m.Description, m.PriceCents, string(m.Category), m.Available, m.UpdatedAt, m.ID)
	}
	if err != nil {
		return model.MenuItem{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.MenuItem{}, err
	}
	committed = true
	m.Price = float64(m.PriceCents) / 100
	return m, nil
}

// DeleteMenuItem removes the item.  Deleting an unknown id succeeds.
func (r *CatalogRepo) DeleteMenuItem(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM menu_items WHERE id = ?", id)
	return err
}
