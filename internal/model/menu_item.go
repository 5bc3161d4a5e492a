package model

import "time"

// MenuCategory groups menu items for filtering and dashboard charts.
type MenuCategory string

const (
	CategoryAppetizer MenuCategory = "appetizer"
	CategoryMain      MenuCategory = "main"
	CategoryDessert   MenuCategory = "dessert"
	CategoryBeverage  MenuCategory = "beverage"
)

// MenuCategories returns every category in menu order.
func MenuCategories() []MenuCategory {
	return []MenuCategory{CategoryAppetizer, CategoryMain, CategoryDessert, CategoryBeverage}
}

func (c MenuCategory) Valid() bool {
	switch c {
	case CategoryAppetizer, CategoryMain, CategoryDessert, CategoryBeverage:
		return true
	}
	return false
}

// MenuItem is a dish or drink offered by exactly one restaurant.  Prices are
// stored in cents; Price is the decimal rendering for clients.
type MenuItem struct {
	ID           string       `json:"id"`
	RestaurantID string       `json:"restaurant_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	PriceCents   int64        `json:"price_cents"`
	Price        float64      `json:"price"`
	Category     MenuCategory `json:"category"`
	Available    bool         `json:"available"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
