package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/repository"
)

// PublicHandler serves unauthenticated browsing of restaurants, menus and
// places.
type PublicHandler struct {
	Catalog *repository.CatalogRepo
	Places  *repository.PlaceRepo
}

func NewPublicHandler(c *repository.CatalogRepo, p *repository.PlaceRepo) *PublicHandler {
	return &PublicHandler{Catalog: c, Places: p}
}

// ListRestaurants handles GET /v1/restaurants?q=&cuisine=.
func (h *PublicHandler) ListRestaurants(c echo.Context) error {
	list, err := h.Catalog.SearchRestaurants(c.Request().Context(), c.QueryParam("q"), c.QueryParam("cuisine"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}

// GetRestaurant handles GET /v1/restaurants/:id.
func (h *PublicHandler) GetRestaurant(c echo.Context) error {
	rest, err := h.Catalog.GetRestaurant(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rest)
}

// ListMenu handles GET /v1/restaurants/:id/menu?q=&category=.  Unavailable
// items are hidden from the public listing.
func (h *PublicHandler) ListMenu(c echo.Context) error {
	list, err := h.Catalog.SearchMenuItems(c.Request().Context(), c.Param("id"), c.QueryParam("q"), c.QueryParam("category"))
	if err != nil {
		return writeError(c, err)
	}
	visible := list[:0]
	for _, m := range list {
		if m.Available {
			visible = append(visible, m)
		}
	}
	return c.JSON(http.StatusOK, items(visible))
}

// ListPlaces handles GET /v1/places?q=&category=&country=.
func (h *PublicHandler) ListPlaces(c echo.Context) error {
	list, err := h.Places.Search(c.Request().Context(), c.QueryParam("q"), c.QueryParam("category"), c.QueryParam("country"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}
