package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/middleware"
	"github.com/iliyamo/table-reservation/internal/model"
)

// identity returns the authenticated caller or writes a 401.  Routes using
// it sit behind middleware.JWTAuth, so the second branch only fires on
// misconfigured routes.
func identity(c echo.Context) (model.Identity, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "message": "missing identity"})
	}
	return id, ok
}

func items[T any](list []T) echo.Map {
	if list == nil {
		list = []T{}
	}
	return echo.Map{"items": list, "count": len(list)}
}
