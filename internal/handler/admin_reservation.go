package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/model"
	"github.com/iliyamo/table-reservation/internal/repository"
	"github.com/iliyamo/table-reservation/internal/service"
)

// AdminReservationHandler serves reservation management for staff.
type AdminReservationHandler struct {
	Reservations *service.ReservationService
}

func NewAdminReservationHandler(r *service.ReservationService) *AdminReservationHandler {
	return &AdminReservationHandler{Reservations: r}
}

// List handles GET /v1/admin/reservations?status=&q=&restaurant_id=&date=.
// An empty or "all" status matches every status.
func (h *AdminReservationHandler) List(c echo.Context) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	f := model.ReservationFilter{
		Keyword:      c.QueryParam("q"),
		RestaurantID: c.QueryParam("restaurant_id"),
		Date:         c.QueryParam("date"),
	}
	if s := c.QueryParam("status"); s != "" && s != "all" {
		f.Status = model.ReservationStatus(s)
	}
	list, err := h.Reservations.List(c.Request().Context(), id, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}

// Get handles GET /v1/admin/reservations/:id.
func (h *AdminReservationHandler) Get(c echo.Context) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	detail, err := h.Reservations.Get(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// ChangeStatus handles POST /v1/admin/reservations/:id/status with body
// {"status": "confirmed"}.
func (h *AdminReservationHandler) ChangeStatus(c echo.Context) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	next, valid := model.ParseReservationStatus(body.Status)
	if !valid {
		return writeError(c, &repository.ValidationError{Field: "status", Reason: "must be pending, confirmed, completed or cancelled"})
	}
	res, err := h.Reservations.Transition(c.Request().Context(), id, c.Param("id"), next)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
