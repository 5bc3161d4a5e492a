package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/table-reservation/internal/database"
	"github.com/iliyamo/table-reservation/internal/model"
	"github.com/iliyamo/table-reservation/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// NewUser carries the fields needed to create an account.
type NewUser struct {
	Email        string
	Name         string
	Password     string
	Role         model.Role
	RestaurantID string // managers only
}

const userCols = "id, email, name, password_hash, role, restaurant_id, profile_image_url, is_active, created_at, updated_at"

func scanUser(s rowScanner) (model.User, error) {
	var (
		u                 model.User
		restaurant, image sql.NullString
	)
	err := s.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &restaurant, &image,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if restaurant.Valid {
		u.RestaurantID = &restaurant.String
	}
	if image.Valid {
		u.ProfileImageURL = &image.String
	}
	return u, err
}

// Create inserts a user and returns it.  Duplicate emails yield
// ErrEmailExists.  Managers must name an existing restaurant.
func (r *UserRepo) Create(ctx context.Context, nu NewUser, cost int) (model.User, error) {
	email := strings.ToLower(strings.TrimSpace(nu.Email))
	if email == "" || nu.Password == "" {
		return model.User{}, invalid("email", "email and password required")
	}
	if !nu.Role.Valid() {
		return model.User{}, invalid("role", "unknown role")
	}
	var restaurant sql.NullString
	if nu.Role == model.RoleManager {
		id := strings.TrimSpace(nu.RestaurantID)
		if id == "" {
			return model.User{}, invalid("restaurant_id", "required for managers")
		}
		ok, err := exists(ctx, r.DB, "SELECT 1 FROM restaurants WHERE id = ?", id)
		if err != nil {
			return model.User{}, err
		}
		if !ok {
			return model.User{}, ErrUnknownRestaurant
		}
		restaurant = sql.NullString{String: id, Valid: true}
	}
	hash, err := utils.HashPassword(nu.Password, cost)
	if err != nil {
		return model.User{}, err
	}
	now := nowUTC()
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (email, name, password_hash, role, restaurant_id, is_active, created_at, updated_at)
		 VALUES (?,?,?,?,?,1,?,?)`,
		email, strings.TrimSpace(nu.Name), hash, string(nu.Role), restaurant, now, now)
	if err != nil {
		if database.IsDuplicateKey(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email = ? LIMIT 1", email))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// SetPasswordHash replaces the stored password hash of a user.
func (r *UserRepo) SetPasswordHash(ctx context.Context, id uint64, hash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?", hash, nowUTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// UpdateProfile changes the name and/or profile image.  Nil arguments keep
// the stored value; an empty image URL clears it.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, name, imageURL *string) (model.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return model.User{}, invalid("name", "must not be empty")
		}
		u.Name = n
	}
	var image sql.NullString
	if u.ProfileImageURL != nil {
		image = sql.NullString{String: *u.ProfileImageURL, Valid: true}
	}
	if imageURL != nil {
		v := strings.TrimSpace(*imageURL)
		image = sql.NullString{String: v, Valid: v != ""}
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name = ?, profile_image_url = ?, updated_at = ? WHERE id = ?",
		u.Name, image, nowUTC(), id); err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, id)
}
