package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/model"
	"github.com/iliyamo/table-reservation/internal/repository"
)

// AdminRestaurantHandler manages restaurants.  Routes are admin only.
type AdminRestaurantHandler struct {
	Catalog *repository.CatalogRepo
}

func NewAdminRestaurantHandler(c *repository.CatalogRepo) *AdminRestaurantHandler {
	return &AdminRestaurantHandler{Catalog: c}
}

type restaurantReq struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Cuisine         string          `json:"cuisine"`
	Address         string          `json:"address"`
	Phone           string          `json:"phone"`
	PriceTier       model.PriceTier `json:"price_tier"`
	Rating          float64         `json:"rating"`
	SeatingCapacity int             `json:"seating_capacity"`
	ImageURL        string          `json:"image_url"`
	ExternalRef     string          `json:"external_ref"`
}

func (r restaurantReq) toModel() model.Restaurant {
	return model.Restaurant{
		ID: r.ID, Name: r.Name, Description: r.Description, Cuisine: r.Cuisine,
		Address: r.Address, Phone: r.Phone, PriceTier: r.PriceTier, Rating: r.Rating,
		SeatingCapacity: r.SeatingCapacity, ImageURL: r.ImageURL, ExternalRef: r.ExternalRef,
	}
}

// Create handles POST /v1/admin/restaurants.  An id may be supplied.
func (h *AdminRestaurantHandler) Create(c echo.Context) error {
	var req restaurantReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	rest, err := h.Catalog.CreateRestaurant(c.Request().Context(), req.toModel())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, rest)
}

// Update handles PUT /v1/admin/restaurants/:id.
func (h *AdminRestaurantHandler) Update(c echo.Context) error {
	var req restaurantReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	rest := req.toModel()
	rest.ID = c.Param("id")
	out, err := h.Catalog.UpdateRestaurant(c.Request().Context(), rest)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /v1/admin/restaurants/:id.  Restaurants with menu
// items or reservations answer 409.
func (h *AdminRestaurantHandler) Delete(c echo.Context) error {
	if err := h.Catalog.DeleteRestaurant(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
