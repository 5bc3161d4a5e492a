package handler

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/model"
	"github.com/iliyamo/table-reservation/internal/repository"
	"github.com/iliyamo/table-reservation/internal/service"
)

// AdminMenuHandler serves menu management for staff.
type AdminMenuHandler struct {
	Menu *service.MenuService
}

func NewAdminMenuHandler(m *service.MenuService) *AdminMenuHandler { return &AdminMenuHandler{Menu: m} }

type menuItemReq struct {
	RestaurantID string             `json:"restaurant_id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Price        float64            `json:"price"`
	Category     model.MenuCategory `json:"category"`
	Available    *bool              `json:"available"`
}

func (r menuItemReq) toModel(id string) (model.MenuItem, error) {
	if math.IsNaN(r.Price) || math.IsInf(r.Price, 0) {
		return model.MenuItem{}, &repository.ValidationError{Field: "price", Reason: "must be a number"}
	}
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return model.MenuItem{
		ID:           id,
		RestaurantID: r.RestaurantID,
		Name:         r.Name,
		Description:  r.Description,
		PriceCents:   int64(math.Round(r.Price * 100)),
		Category:     r.Category,
		Available:    available,
	}, nil
}

// List handles GET /v1/admin/restaurants/:id/menu?q=&category=, including
// unavailable items.
func (h *AdminMenuHandler) List(c echo.Context) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	list, err := h.Menu.List(c.Request().Context(), id, c.Param("id"), c.QueryParam("q"), c.QueryParam("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}

func (h *AdminMenuHandler) save(c echo.Context, itemID string, status int) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	item, err := req.toModel(itemID)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.Menu.Upsert(c.Request().Context(), id, item)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(status, out)
}

// Create handles POST /v1/admin/menu-items.
func (h *AdminMenuHandler) Create(c echo.Context) error { return h.save(c, "", http.StatusCreated) }

// Update handles PUT /v1/admin/menu-items/:id.  The body replaces the item.
func (h *AdminMenuHandler) Update(c echo.Context) error {
	return h.save(c, c.Param("id"), http.StatusOK)
}

// Delete handles DELETE /v1/admin/menu-items/:id.  Unknown ids still
// answer 204.
func (h *AdminMenuHandler) Delete(c echo.Context) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	if err := h.Menu.Delete(c.Request().Context(), id, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
