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

// PlaceRepo stores the points of interest offered to tourists.
type PlaceRepo struct{ db *sql.DB }

func NewPlaceRepo(db *sql.DB) *PlaceRepo { return &PlaceRepo{db: db} }

const placeCols = "id, name, description, country, city, rating, category, image_url"

func scanPlace(s rowScanner) (model.Place, error) {
	var p model.Place
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Country, &p.City, &p.Rating, &p.Category, &p.ImageURL)
	return p, err
}

// Search matches keyword against name or description like the restaurant
// search.  category and country are exact filters; "" or "all" disables them.
func (r *PlaceRepo) Search(ctx context.Context, keyword, category, country string) ([]model.Place, error) {
	var w whereClause
	if kw := strings.TrimSpace(keyword); kw != "" {
		p := containsPattern(kw)
		w.add("(LOWER(name) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", p, p)
	}
	if !isWildcard(category) {
		w.add("category = ?", strings.ToLower(strings.TrimSpace(category)))
	}
	if !isWildcard(country) {
		w.add("LOWER(country) = ?", strings.ToLower(strings.TrimSpace(country)))
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+placeCols+" FROM places"+w.String()+" ORDER BY seq", w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Place{}
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PlaceRepo) GetByID(ctx context.Context, id string) (model.Place, error) {
	p, err := scanPlace(r.db.QueryRowContext(ctx, "SELECT "+placeCols+" FROM places WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Place{}, ErrNotFound
	}
	return p, err
}

// Create inserts a place, generating an ID when none is supplied.
func (r *PlaceRepo) Create(ctx context.Context, p model.Place) (model.Place, error) {
	p.Name = strings.TrimSpace(p.Name)
	switch {
	case p.Name == "":
		return model.Place{}, invalid("name", "required")
	case !p.Category.Valid():
		return model.Place{}, invalid("category", "must be historical, nature, cultural or adventure")
	case p.Rating < 0 || p.Rating > 5:
		return model.Place{}, invalid("rating", "must be between 0 and 5")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO places
		(id, name, description, country, city, rating, category, image_url) VALUES (?,?,?,?,?,?,?,?)`,
		p.ID, p.Name, p.Description, p.Country, p.City, p.Rating, string(p.Category), p.ImageURL)
	if err != nil {
		if database.IsDuplicateKey(err) {
			return model.Place{}, ErrConflict
		}
		return model.Place{}, err
	}
	return p, nil
}
