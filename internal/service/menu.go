package service

import (
	"context"
	"errors"

	"github.com/iliyamo/table-reservation/internal/logger"
	"github.com/iliyamo/table-reservation/internal/model"
	"github.com/iliyamo/table-reservation/internal/repository"
)

// MenuService guards menu mutations so that managers only touch the menu of
// their own restaurant.
type MenuService struct {
	Catalog *repository.CatalogRepo
	Log     *logger.Logger
}

func NewMenuService(c *repository.CatalogRepo, l *logger.Logger) *MenuService {
	return &MenuService{Catalog: c, Log: l}
}

func (s *MenuService) List(ctx context.Context, id model.Identity, restaurantID, keyword, category string) ([]model.MenuItem, error) {
	if !id.CanManage(restaurantID) {
		return nil, repository.ErrForbidden
	}
	return s.Catalog.SearchMenuItems(ctx, restaurantID, keyword, category)
}

// Upsert creates or replaces an item.  For updates the stored item's
// restaurant must be manageable too.
func (s *MenuService) Upsert(ctx context.Context, id model.Identity, item model.MenuItem) (model.MenuItem, error) {
	if !id.CanManage(item.RestaurantID) {
		return model.MenuItem{}, repository.ErrForbidden
	}
	if item.ID != "" {
		cur, err := s.Catalog.GetMenuItem(ctx, item.ID)
		if err != nil {
			return model.MenuItem{}, err
		}
		if !id.CanManage(cur.RestaurantID) {
			return model.MenuItem{}, repository.ErrForbidden
		}
	}
	out, err := s.Catalog.UpsertMenuItem(ctx, item)
	if err != nil {
		return model.MenuItem{}, err
	}
	s.Log.Info("menu_item_saved", "menu item saved", "menu_item_id", out.ID, "restaurant_id", out.RestaurantID)
	return out, nil
}

// Delete removes an item.  Unknown ids succeed without change.
func (s *MenuService) Delete(ctx context.Context, id model.Identity, itemID string) error {
	if !id.Role.Staff() {
		return repository.ErrForbidden
	}
	cur, err := s.Catalog.GetMenuItem(ctx, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !id.CanManage(cur.RestaurantID) {
		return repository.ErrForbidden
	}
	if err := s.Catalog.DeleteMenuItem(ctx, itemID); err != nil {
		return err
	}
	s.Log.Info("menu_item_deleted", "menu item deleted", "menu_item_id", itemID, "restaurant_id", cur.RestaurantID)
	return nil
}
