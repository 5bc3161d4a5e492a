package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/handler"
	"github.com/iliyamo/table-reservation/internal/middleware"
)

// RegisterTourist registers the booking endpoints under /v1/bookings.  All
// routes require a valid JWT and a tourist or customer role; ownership of
// individual bookings is checked in the service layer.
func RegisterTourist(e *echo.Echo, h *handler.TouristHandler, jwtSecret string, g Guards) {
	b := e.Group("/v1/bookings", use(
		middleware.JWTAuth(jwtSecret),
		middleware.RequireTraveller(),
		g.RateLimit,
	)...)
	b.POST("", h.Create)
	b.GET("", h.List)
	b.GET("/:id", h.Get)
	b.POST("/:id/cancel", h.Cancel)
}
