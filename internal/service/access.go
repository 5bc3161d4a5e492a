// Package service holds the identity-aware workflows behind the HTTP
// handlers: booking, reservation management, menu management and the
// dashboard projections.  Every operation receives the caller's identity
// explicitly.
package service

import (
	"github.com/iliyamo/table-reservation/internal/model"
	"github.com/iliyamo/table-reservation/internal/repository"
)

// RestaurantScope resolves which restaurant a staff caller may look at.
// Admins may ask for any restaurant or for all ("").  Managers are pinned
// to their own restaurant; asking for another one is forbidden.
func RestaurantScope(id model.Identity, requested string) (string, error) {
	switch id.Role {
	case model.RoleAdmin:
		return requested, nil
	case model.RoleManager:
		if requested != "" && requested != id.RestaurantID {
			return "", repository.ErrForbidden
		}
		if id.RestaurantID == "" {
			return "", repository.ErrForbidden
		}
		return id.RestaurantID, nil
	}
	return "", repository.ErrForbidden
}

// canView reports whether id may read res.
func canView(id model.Identity, res model.Reservation) bool {
	if id.Role.Traveller() {
		return res.UserID != nil && *res.UserID == id.UserID
	}
	return id.CanManage(res.RestaurantID)
}
