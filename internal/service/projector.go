package service

import (
	"context"
	"sort"
	"strconv"

	"github.com/iliyamo/table-reservation/internal/model"
	"github.com/iliyamo/table-reservation/internal/repository"
)

// Projector derives dashboard aggregates from the live stores on every
// call.  It never writes.  An empty restaurantID aggregates every
// restaurant.
type Projector struct {
	Reservations *repository.ReservationRepo
	Catalog      *repository.CatalogRepo
}

func NewProjector(r *repository.ReservationRepo, c *repository.CatalogRepo) *Projector {
	return &Projector{Reservations: r, Catalog: c}
}

type StatusCount struct {
	Status model.ReservationStatus `json:"status"`
	Count  int                     `json:"count"`
}

type MonthRevenue struct {
	Month        string  `json:"month"` // YYYY-MM
	Reservations int     `json:"reservations"`
	RevenueCents int64   `json:"revenue_cents"`
	Revenue      float64 `json:"revenue"`
}

type CategoryCount struct {
	Category model.MenuCategory `json:"category"`
	Count    int                `json:"count"`
}

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// coverEstimateCents is the assumed spend per guest for each price tier.
var coverEstimateCents = map[model.PriceTier]int64{
	model.PriceBudget:     1500,
	model.PriceModerate:   3000,
	model.PriceUpscale:    6000,
	model.PriceFineDining: 12000,
}

// CoverEstimateCents returns the per-guest revenue estimate of a tier.
func CoverEstimateCents(t model.PriceTier) int64 { return coverEstimateCents[t] }

func (p *Projector) reservations(ctx context.Context, restaurantID string) ([]model.Reservation, error) {
	return p.Reservations.Query(ctx, model.ReservationFilter{RestaurantID: restaurantID})
}

// CountsByStatus returns every status, including those with zero
// reservations, in lifecycle order.
func (p *Projector) CountsByStatus(ctx context.Context, restaurantID string) ([]StatusCount, error) {
	list, err := p.reservations(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	counts := map[model.ReservationStatus]int{}
	for _, r := range list {
		counts[r.Status]++
	}
	out := make([]StatusCount, 0, 4)
	for _, st := range model.AllStatuses() {
		out = append(out, StatusCount{Status: st, Count: counts[st]})
	}
	return out, nil
}

// RevenueByMonth estimates revenue of completed reservations per calendar
// month of the reservation date, oldest month first.
func (p *Projector) RevenueByMonth(ctx context.Context, restaurantID string) ([]MonthRevenue, error) {
	list, err := p.Reservations.Query(ctx, model.ReservationFilter{
		RestaurantID: restaurantID, Status: model.StatusCompleted,
	})
	if err != nil {
		return nil, err
	}
	rests, err := p.Catalog.SearchRestaurants(ctx, "", "")
	if err != nil {
		return nil, err
	}
	tiers := make(map[string]model.PriceTier, len(rests))
	for _, r := range rests {
		tiers[r.ID] = r.PriceTier
	}

	byMonth := map[string]*MonthRevenue{}
	for _, r := range list {
		if len(r.Date) < 7 {
			continue
		}
		month := r.Date[:7]
		m := byMonth[month]
		if m == nil {
			m = &MonthRevenue{Month: month}
			byMonth[month] = m
		}
		m.Reservations++
		m.RevenueCents += int64(r.Guests) * CoverEstimateCents(tiers[r.RestaurantID])
	}
	out := make([]MonthRevenue, 0, len(byMonth))
	for _, m := range byMonth {
		m.Revenue = float64(m.RevenueCents) / 100
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// CategoryDistribution counts menu items per category, zero-filled.
func (p *Projector) CategoryDistribution(ctx context.Context, restaurantID string) ([]CategoryCount, error) {
	items, err := p.Catalog.ListMenuItems(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	counts := map[model.MenuCategory]int{}
	for _, it := range items {
		counts[it.Category]++
	}
	out := make([]CategoryCount, 0, 4)
	for _, c := range model.MenuCategories() {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out, nil
}

// BookingsByHour buckets non-cancelled reservations by the hour of their
// time, returning all 24 hours.
func (p *Projector) BookingsByHour(ctx context.Context, restaurantID string) ([]HourCount, error) {
	list, err := p.reservations(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	out := make([]HourCount, 24)
	for h := range out {
		out[h].Hour = h
	}
	for _, r := range list {
		if r.Status == model.StatusCancelled || len(r.Time) < 2 {
			continue
		}
		h, err := strconv.Atoi(r.Time[:2])
		if err != nil || h < 0 || h > 23 {
			continue
		}
		out[h].Count++
	}
	return out, nil
}

// BookingsByDay counts non-cancelled reservations per date, ascending.
func (p *Projector) BookingsByDay(ctx context.Context, restaurantID string) ([]DayCount, error) {
	list, err := p.reservations(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, r := range list {
		if r.Status == model.StatusCancelled {
			continue
		}
		counts[r.Date]++
	}
	out := make([]DayCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, DayCount{Date: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
