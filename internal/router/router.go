package router // router defines how HTTP routes are registered for the API

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/handler"
	"github.com/iliyamo/table-reservation/internal/middleware"
)

// Guards are the optional cross-cutting middlewares applied per route
// group.  Nil entries are skipped.
type Guards struct {
	Cache     echo.MiddlewareFunc // response cache for public GETs
	RateLimit echo.MiddlewareFunc // token bucket, applied after auth so keys carry the user
	Purge     echo.MiddlewareFunc // cache purge after catalog writes
}

func use(mws ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	out := make([]echo.MiddlewareFunc, 0, len(mws))
	for _, m := range mws {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

// RegisterRoutes registers operational endpoints: liveness, readiness and
// the Prometheus scrape target.
func RegisterRoutes(e *echo.Echo, db *sql.DB, metricsHandler http.Handler) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db))
	if metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(metricsHandler))
	}
}

// RegisterAuth registers authentication routes.  Register, login, refresh
// and logout live under /v1/auth and need no session; profile endpoints
// require a valid access token of any role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, g Guards) {
	pub := e.Group("/v1/auth", use(g.RateLimit)...)
	pub.POST("/register", a.Register)
	pub.POST("/login", a.Login)
	pub.POST("/refresh", a.Refresh)
	pub.POST("/logout", a.Logout)

	auth := e.Group("/v1", use(middleware.JWTAuth(jwtSecret), g.RateLimit)...)
	auth.GET("/me", a.Me)
	auth.PATCH("/me", a.UpdateMe)
}

// RegisterPublic registers unauthenticated browse endpoints.  Responses are
// cached when a cache middleware is configured.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, g Guards) {
	pub := e.Group("/v1", use(g.RateLimit, g.Cache)...)
	pub.GET("/restaurants", p.ListRestaurants)
	pub.GET("/restaurants/:id", p.GetRestaurant)
	pub.GET("/restaurants/:id/menu", p.ListMenu)
	pub.GET("/places", p.ListPlaces)
}
