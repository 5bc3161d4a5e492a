package model

import "time"

// Role gates which surface a caller may use.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleCustomer Role = "customer"
	RoleTourist  Role = "tourist"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCustomer, RoleTourist:
		return true
	}
	return false
}

// Staff reports whether the role may use the admin surface.
func (r Role) Staff() bool { return r == RoleAdmin || r == RoleManager }

// Traveller reports whether the role may use the tourist surface.
func (r Role) Traveller() bool { return r == RoleTourist || r == RoleCustomer }

// User represents an account as stored in the `users` table.
//
// Fields:
//
//	ID              – primary key identifier.
//	Email           – unique, lower-cased email address.
//	Name            – display name.
//	PasswordHash    – bcrypt hash.
//	Role            – admin, manager, customer or tourist.
//	RestaurantID    – restaurant a manager is assigned to (nil otherwise).
//	ProfileImageURL – optional avatar.
//	IsActive        – disabled accounts cannot log in.
type User struct {
	ID              uint64
	Email           string
	Name            string
	PasswordHash    string
	Role            Role
	RestaurantID    *string
	ProfileImageURL *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Identity is the authenticated caller.  It is built from the access token
// by the JWT middleware and passed explicitly to every service call.
type Identity struct {
	UserID       uint64 `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	RestaurantID string `json:"restaurant_id,omitempty"`
}

// CanManage reports whether the caller may administer restaurantID.  Admins
// manage every restaurant; managers only the one they are assigned to.
func (i Identity) CanManage(restaurantID string) bool {
	switch i.Role {
	case RoleAdmin:
		return true
	case RoleManager:
		return i.RestaurantID != "" && i.RestaurantID == restaurantID
	}
	return false
}

// Actor is the label recorded in status history for changes made by i.
func (i Identity) Actor() string {
	if i.Email != "" {
		return string(i.Role) + ":" + i.Email
	}
	return string(i.Role)
}

// Identity returns the caller identity carried in u's access tokens.
func (u User) Identity() Identity {
	id := Identity{UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
	if u.RestaurantID != nil {
		id.RestaurantID = *u.RestaurantID
	}
	return id
}
