package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/service"
)

// StatsHandler serves the dashboard projections.  Admins may pass
// ?restaurant_id= to narrow the view; managers always see their own
// restaurant.
type StatsHandler struct {
	Projector *service.Projector
}

func NewStatsHandler(p *service.Projector) *StatsHandler { return &StatsHandler{Projector: p} }

func serveStats[T any](c echo.Context, project func(ctx context.Context, restaurantID string) ([]T, error)) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	scope, err := service.RestaurantScope(id, c.QueryParam("restaurant_id"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := project(c.Request().Context(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"restaurant_id": scope, "items": out})
}

func (h *StatsHandler) Status(c echo.Context) error {
	return serveStats(c, h.Projector.CountsByStatus)
}

func (h *StatsHandler) Revenue(c echo.Context) error {
	return serveStats(c, h.Projector.RevenueByMonth)
}

func (h *StatsHandler) Categories(c echo.Context) error {
	return serveStats(c, h.Projector.CategoryDistribution)
}

func (h *StatsHandler) Hours(c echo.Context) error {
	return serveStats(c, h.Projector.BookingsByHour)
}

func (h *StatsHandler) Daily(c echo.Context) error {
	return serveStats(c, h.Projector.BookingsByDay)
}
