package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/model"
)

// RequireRole aborts with 403 unless JWTAuth stored an identity whose role
// is one of roles.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok || !allowed[id.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden", "message": "role not allowed"})
			}
			return next(c)
		}
	}
}

// RequireStaff admits admins and managers.
func RequireStaff() echo.MiddlewareFunc { return RequireRole(model.RoleAdmin, model.RoleManager) }

// RequireTraveller admits tourists and customers.
func RequireTraveller() echo.MiddlewareFunc {
	return RequireRole(model.RoleTourist, model.RoleCustomer)
}
