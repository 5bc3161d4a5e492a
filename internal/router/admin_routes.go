package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/handler"
	"github.com/iliyamo/table-reservation/internal/middleware"
	"github.com/iliyamo/table-reservation/internal/model"
)

// AdminHandlers groups the staff-facing handlers.
type AdminHandlers struct {
	Restaurants  *handler.AdminRestaurantHandler
	Menu         *handler.AdminMenuHandler
	Reservations *handler.AdminReservationHandler
	Stats        *handler.StatsHandler
}

// RegisterAdmin registers the staff dashboard under /v1/admin.  Every
// route requires an admin or manager token; restaurant CRUD is admin only
// and managers are narrowed to their own restaurant in the service layer.
// Catalog writes purge the public response cache.
func RegisterAdmin(e *echo.Echo, h AdminHandlers, jwtSecret string, g Guards) {
	staff := e.Group("/v1/admin", use(
		middleware.JWTAuth(jwtSecret),
		middleware.RequireStaff(),
		g.RateLimit,
	)...)

	// ---- Restaurants ----
	rest := staff.Group("/restaurants", use(g.Purge)...)
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	rest.POST("", h.Restaurants.Create, adminOnly)
	rest.PUT("/:id", h.Restaurants.Update, adminOnly)
	rest.DELETE("/:id", h.Restaurants.Delete, adminOnly)
	rest.GET("/:id/menu", h.Menu.List)

	// ---- Menu items ----
	menu := staff.Group("/menu-items", use(g.Purge)...)
	menu.POST("", h.Menu.Create)
	menu.PUT("/:id", h.Menu.Update)
	menu.DELETE("/:id", h.Menu.Delete)

	// ---- Stats ----
	stats := staff.Group("/stats")
	stats.GET("/status", h.Stats.Status)
	stats.GET("/revenue", h.Stats.Revenue)
	stats.GET("/categories", h.Stats.Categories)
	stats.GET("/hours", h.Stats.Hours)
	stats.GET("/daily", h.Stats.Daily)

	registerAdminReservations(staff, h.Reservations)
}
