package router

// Reservation management for staff lives in its own file to keep the
// status workflow separate from catalog administration.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/handler"
)

// registerAdminReservations mounts list, detail and status-change routes on
// the staff group.
func registerAdminReservations(staff *echo.Group, h *handler.AdminReservationHandler) {
	g := staff.Group("/reservations")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("/:id/status", h.ChangeStatus)
	g.PATCH("/:id", h.ChangeStatus)
}
