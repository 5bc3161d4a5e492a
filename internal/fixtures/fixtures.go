// Package fixtures holds the demo data set and seeds it into a database.
package fixtures

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/table-reservation/internal/model"
	"github.com/iliyamo/table-reservation/internal/repository"
)

//go:embed fixtures.yaml
var embedded []byte

// SeedActor is recorded in status history for seeded reservations.
const SeedActor = "system:seed"

type Set struct {
	Restaurants  []Restaurant  `yaml:"restaurants"`
	Places       []model.Place `yaml:"places"`
	Reservations []Reservation `yaml:"reservations"`
}

type Restaurant struct {
	ID              string          `yaml:"id"`
	Name            string          `yaml:"name"`
	Description     string          `yaml:"description"`
	Cuisine         string          `yaml:"cuisine"`
	Address         string          `yaml:"address"`
	Phone           string          `yaml:"phone"`
	PriceTier       model.PriceTier `yaml:"price_tier"`
	Rating          float64         `yaml:"rating"`
	SeatingCapacity int             `yaml:"seating_capacity"`
	ImageURL        string          `yaml:"image_url"`
	Menu            []MenuItem      `yaml:"menu"`
}

type MenuItem struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Price       float64            `yaml:"price"`
	Category    model.MenuCategory `yaml:"category"`
	Available   *bool              `yaml:"available"`
}

type Reservation struct {
	RestaurantID    string                  `yaml:"restaurant_id"`
	Name            string                  `yaml:"name"`
	Email           string                  `yaml:"email"`
	Phone           string                  `yaml:"phone"`
	Date            string                  `yaml:"date"`
	Time            string                  `yaml:"time"`
	Guests          int                     `yaml:"guests"`
	Status          model.ReservationStatus `yaml:"status"`
	SpecialRequests string                  `yaml:"special_requests"`
}

// Default returns the embedded fixture set.
func Default() (Set, error) { return Parse(embedded) }

// LoadFile reads a fixture set from a YAML file.
func LoadFile(path string) (Set, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return Set{}, err
	}
	return Parse(bs)
}

func Parse(bs []byte) (Set, error) {
	var s Set
	if err := yaml.Unmarshal(bs, &s); err != nil {
		return Set{}, fmt.Errorf("parse fixtures: %w", err)
	}
	for _, r := range s.Reservations {
		if r.Status != "" && !r.Status.Valid() {
			return Set{}, fmt.Errorf("parse fixtures: reservation %q: unknown status %q", r.Name, r.Status)
		}
	}
	return s, nil
}

// Stores are the repositories Seed writes to.
type Stores struct {
	Catalog      *repository.CatalogRepo
	Places       *repository.PlaceRepo
	Reservations *repository.ReservationRepo
}

// Result counts what Seed inserted.
type Result struct {
	Restaurants  int
	MenuItems    int
	Places       int
	Reservations int
}

// Seed inserts s and is safe to run repeatedly.  Existing restaurants and
// places are left alone; menu items are only added together with a newly
// created restaurant; reservations are only added to an empty store.
func Seed(ctx context.Context, st Stores, s Set) (Result, error) {
	var res Result
	for _, fr := range s.Restaurants {
		_, err := st.Catalog.GetRestaurant(ctx, fr.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrUnknownRestaurant) {
			return res, err
		}
		rest, err := st.Catalog.CreateRestaurant(ctx, model.Restaurant{
			ID: fr.ID, Name: fr.Name, Description: fr.Description, Cuisine: fr.Cuisine,
			Address: fr.Address, Phone: fr.Phone, PriceTier: fr.PriceTier, Rating: fr.Rating,
			SeatingCapacity: fr.SeatingCapacity, ImageURL: fr.ImageURL,
		})
		if err != nil {
			return res, fmt.Errorf("seed restaurant %s: %w", fr.ID, err)
		}
		res.Restaurants++
		for _, fm := range fr.Menu {
			available := true
			if fm.Available != nil {
				available = *fm.Available
			}
			if _, err := st.Catalog.UpsertMenuItem(ctx, model.MenuItem{
				RestaurantID: rest.ID,
				Name:         fm.Name,
				Description:  fm.Description,
				PriceCents:   int64(math.Round(fm.Price * 100)),
				Category:     fm.Category,
				Available:    available,
			}); err != nil {
				return res, fmt.Errorf("seed menu item %s/%s: %w", rest.ID, fm.Name, err)
			}
			res.MenuItems++
		}
	}

	for _, p := range s.Places {
		if p.ID != "" {
			_, err := st.Places.GetByID(ctx, p.ID)
			if err == nil {
				continue
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return res, err
			}
		}
		if _, err := st.Places.Create(ctx, p); err != nil {
			return res, fmt.Errorf("seed place %s: %w", p.Name, err)
		}
		res.Places++
	}

	n, err := st.Reservations.Count(ctx)
	if err != nil {
		return res, err
	}
	if n > 0 {
		return res, nil
	}
	for _, fr := range s.Reservations {
		r, err := st.Reservations.Create(ctx, model.ReservationDraft{
			RestaurantID:    fr.RestaurantID,
			CustomerName:    fr.Name,
			CustomerEmail:   fr.Email,
			CustomerPhone:   fr.Phone,
			Date:            fr.Date,
			Time:            fr.Time,
			Guests:          fr.Guests,
			SpecialRequests: fr.SpecialRequests,
		}, SeedActor)
		if err != nil {
			return res, fmt.Errorf("seed reservation %s: %w", fr.Name, err)
		}
		for _, next := range pathTo(fr.Status) {
			if _, err := st.Reservations.Transition(ctx, r.ID, next, SeedActor); err != nil {
				return res, fmt.Errorf("seed reservation %s: %w", fr.Name, err)
			}
		}
		res.Reservations++
	}
	return res, nil
}

// pathTo lists the transitions that take a pending reservation to target.
func pathTo(target model.ReservationStatus) []model.ReservationStatus {
	switch target {
	case model.StatusConfirmed:
		return []model.ReservationStatus{model.StatusConfirmed}
	case model.StatusCompleted:
		return []model.ReservationStatus{model.StatusConfirmed, model.StatusCompleted}
	case model.StatusCancelled:
		return []model.ReservationStatus{model.StatusCancelled}
	}
	return nil
}
