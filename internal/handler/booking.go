package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/model"
	"github.com/iliyamo/table-reservation/internal/service"
)

// TouristHandler serves the booking endpoints of the tourist surface.  It
// assumes JWT authentication and the traveller role check already ran.
type TouristHandler struct {
	Booking      *service.BookingService
	Reservations *service.ReservationService
}

func NewTouristHandler(b *service.BookingService, r *service.ReservationService) *TouristHandler {
	return &TouristHandler{Booking: b, Reservations: r}
}

type bookingReq struct {
	RestaurantID    string `json:"restaurant_id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Guests          int    `json:"guests"`
	Name            string `json:"customer_name"`
	Email           string `json:"customer_email"`
	Phone           string `json:"customer_phone"`
	SpecialRequests string `json:"special_requests"`
}

// Create handles POST /v1/bookings.
func (h *TouristHandler) Create(c echo.Context) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	res, err := h.Booking.Book(c.Request().Context(), id, service.BookingRequest{
		RestaurantID:    req.RestaurantID,
		Date:            req.Date,
		Time:            req.Time,
		Guests:          req.Guests,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// List handles GET /v1/bookings?status=.
func (h *TouristHandler) List(c echo.Context) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	list, err := h.Reservations.List(c.Request().Context(), id, model.ReservationFilter{
		Status: model.ReservationStatus(c.QueryParam("status")),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}

// Get handles GET /v1/bookings/:id.
func (h *TouristHandler) Get(c echo.Context) error {
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

// Cancel handles POST /v1/bookings/:id/cancel.
func (h *TouristHandler) Cancel(c echo.Context) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	res, err := h.Reservations.Cancel(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
