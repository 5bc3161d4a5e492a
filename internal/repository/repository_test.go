package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/iliyamo/table-reservation/internal/database/dbtest"
	"github.com/iliyamo/table-reservation/internal/model"
	"github.com/iliyamo/table-reservation/internal/repository"
)

func seedRestaurant(t *testing.T, catalog *repository.CatalogRepo, rest model.Restaurant) model.Restaurant {
	t.Helper()
	if rest.Cuisine == "" {
		rest.Cuisine = "Italian"
	}
	if rest.PriceTier == 0 {
		rest.PriceTier = model.PriceModerate
	}
	if rest.SeatingCapacity == 0 {
		rest.SeatingCapacity = 80
	}
	out, err := catalog.CreateRestaurant(context.Background(), rest)
	if err != nil {
		t.Fatalf("CreateRestaurant(%s): %v", rest.ID, err)
	}
	return out
}

func draft(restaurantID string, guests int) model.ReservationDraft {
	return model.ReservationDraft{
		RestaurantID:  restaurantID,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Date:          "2025-06-01",
		Time:          "19:30",
		Guests:        guests,
	}
}

func newStores(t *testing.T) (*sql.DB, *repository.CatalogRepo, *repository.ReservationRepo) {
	t.Helper()
	db := dbtest.Open(t)
	catalog := repository.NewCatalogRepo(db)
	seedRestaurant(t, catalog, model.Restaurant{ID: "rest-1", Name: "La Bella Vista", Description: "Rooftop trattoria"})
	return db, catalog, repository.NewReservationRepo(db)
}

func TestReservationLifecycle(t *testing.T) {
	ctx := context.Background()
	_, _, reservations := newStores(t)

	res, err := reservations.Create(ctx, draft("rest-1", 4), "tourist:ada@example.com")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Status != model.StatusPending || res.ID == "" {
		t.Fatalf("unexpected reservation %+v", res)
	}

	res, err = reservations.Transition(ctx, res.ID, model.StatusConfirmed, "admin")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if res.Status != model.StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", res.Status)
	}

	_, err = reservations.Transition(ctx, res.ID, model.StatusPending, "admin")
	var te *repository.TransitionError
	if !errors.As(err, &te) || !errors.Is(err, repository.ErrInvalidTransition) {
		t.Fatalf("confirmed -> pending: got %v, want TransitionError", err)
	}
	if te.From != model.StatusConfirmed || te.To != model.StatusPending {
		t.Fatalf("TransitionError = %+v", te)
	}

	got, err := reservations.GetByID(ctx, res.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != model.StatusConfirmed {
		t.Fatalf("failed transition changed status to %s", got.Status)
	}

	hist, err := reservations.History(ctx, res.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 2 || hist[0].From != "" || hist[0].To != model.StatusPending ||
		hist[1].From != model.StatusPending || hist[1].To != model.StatusConfirmed {
		t.Fatalf("unexpected history %+v", hist)
	}
}

func TestReservationTransitionMatrix(t *testing.T) {
	ctx := context.Background()
	_, _, reservations := newStores(t)

	// paths from pending reaching each status
	paths := map[model.ReservationStatus][]model.ReservationStatus{
		model.StatusPending:   nil,
		model.StatusConfirmed: {model.StatusConfirmed},
		model.StatusCompleted: {model.StatusConfirmed, model.StatusCompleted},
		model.StatusCancelled: {model.StatusCancelled},
	}
	for from, path := range paths {
		for _, to := range model.AllStatuses() {
			res, err := reservations.Create(ctx, draft("rest-1", 2), "test")
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			for _, step := range path {
				if _, err := reservations.Transition(ctx, res.ID, step, "test"); err != nil {
					t.Fatalf("setup %s: %v", step, err)
				}
			}
			_, err = reservations.Transition(ctx, res.ID, to, "test")
			if want := from.CanTransitionTo(to); want != (err == nil) {
				t.Errorf("%s -> %s: err = %v, want success %v", from, to, err, want)
			}
			if err != nil && !errors.Is(err, repository.ErrInvalidTransition) {
				t.Errorf("%s -> %s: err = %v, want ErrInvalidTransition", from, to, err)
			}
		}
	}
}

func TestReservationCreateRejects(t *testing.T) {
	ctx := context.Background()
	_, _, reservations := newStores(t)

	tests := []struct {
		name  string
		draft model.ReservationDraft
		want  error
	}{
		{"over capacity", draft("rest-1", 81), repository.ErrCapacityExceeded},
		{"unknown restaurant", draft("rest-404", 2), repository.ErrUnknownRestaurant},
		{"no guests", draft("rest-1", 0), repository.ErrValidation},
		{"bad date", func() model.ReservationDraft { d := draft("rest-1", 2); d.Date = "01/06/2025"; return d }(), repository.ErrValidation},
		{"bad time", func() model.ReservationDraft { d := draft("rest-1", 2); d.Time = "7pm"; return d }(), repository.ErrValidation},
		{"no email", func() model.ReservationDraft { d := draft("rest-1", 2); d.CustomerEmail = ""; return d }(), repository.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := reservations.Create(ctx, tt.draft, "test"); !errors.Is(err, tt.want) {
				t.Fatalf("Create error = %v, want %v", err, tt.want)
			}
		})
	}
	n, err := reservations.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Fatalf("rejected drafts were stored: count = %d", n)
	}
}

func TestReservationTransitionUnknown(t *testing.T) {
	_, _, reservations := newStores(t)
	_, err := reservations.Transition(context.Background(), "missing", model.StatusConfirmed, "test")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestReservationQuery(t *testing.T) {
	ctx := context.Background()
	_, catalog, reservations := newStores(t)
	seedRestaurant(t, catalog, model.Restaurant{ID: "rest-2", Name: "Sakura"})

	uid := uint64(7)
	drafts := []model.ReservationDraft{
		{RestaurantID: "rest-1", CustomerName: "John Smith", CustomerEmail: "john@example.com", Date: "2025-06-01", Time: "19:00", Guests: 2},
		{RestaurantID: "rest-2", CustomerName: "Maria 100%", CustomerEmail: "maria@example.com", Date: "2025-06-02", Time: "20:00", Guests: 3, UserID: &uid},
		{RestaurantID: "rest-1", CustomerName: "Li Wei", CustomerEmail: "SMITHY@example.com", Date: "2025-06-02", Time: "12:00", Guests: 5},
	}
	var ids []string
	for _, d := range drafts {
		res, err := reservations.Create(ctx, d, "test")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, res.ID)
	}
	if _, err := reservations.Transition(ctx, ids[2], model.StatusConfirmed, "test"); err != nil {
		t.Fatalf("Transition: %v", err)
	}

	tests := []struct {
		name   string
		filter model.ReservationFilter
		want   []string
	}{
		{"all", model.ReservationFilter{}, ids},
		{"keyword name or email", model.ReservationFilter{Keyword: "SMITH"}, []string{ids[0], ids[2]}},
		{"literal percent", model.ReservationFilter{Keyword: "100%"}, []string{ids[1]}},
		{"status", model.ReservationFilter{Status: model.StatusPending}, []string{ids[0], ids[1]}},
		{"restaurant", model.ReservationFilter{RestaurantID: "rest-1"}, []string{ids[0], ids[2]}},
		{"user", model.ReservationFilter{UserID: &uid}, []string{ids[1]}},
		{"date", model.ReservationFilter{Date: "2025-06-02"}, []string{ids[1], ids[2]}},
		{"conjunction", model.ReservationFilter{RestaurantID: "rest-1", Status: model.StatusConfirmed, Keyword: "smith"}, []string{ids[2]}},
		{"no match", model.ReservationFilter{Keyword: "nobody"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for round := 0; round < 2; round++ {
				got, err := reservations.Query(ctx, tt.filter)
				if err != nil {
					t.Fatalf("Query: %v", err)
				}
				if len(got) != len(tt.want) {
					t.Fatalf("round %d: got %d results, want %d", round, len(got), len(tt.want))
				}
				for i := range got {
					if got[i].ID != tt.want[i] {
						t.Fatalf("round %d: result %d = %s, want %s", round, i, got[i].ID, tt.want[i])
					}
				}
			}
		})
	}
}

func TestSearchRestaurants(t *testing.T) {
	ctx := context.Background()
	_, catalog, _ := newStores(t)
	seedRestaurant(t, catalog, model.Restaurant{ID: "rest-2", Name: "Sakura", Cuisine: "Japanese", Description: "Sushi bar"})
	seedRestaurant(t, catalog, model.Restaurant{ID: "rest-3", Name: "Bellini", Cuisine: "Italian", Description: "Pasta"})

	tests := []struct {
		keyword, cuisine string
		want             []string
	}{
		{"", "", []string{"rest-1", "rest-2", "rest-3"}},
		{"bella", "all", []string{"rest-1"}},
		{"BELL", "", []string{"rest-1", "rest-3"}},
		{"sushi", "", []string{"rest-2"}},
		{"", "italian", []string{"rest-1", "rest-3"}},
		{"bell", "Japanese", nil},
	}
	for _, tt := range tests {
		got, err := catalog.SearchRestaurants(ctx, tt.keyword, tt.cuisine)
		if err != nil {
			t.Fatalf("SearchRestaurants: %v", err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("SearchRestaurants(%q, %q) = %d results, want %d", tt.keyword, tt.cuisine, len(got), len(tt.want))
		}
		for i := range got {
			if got[i].ID != tt.want[i] {
				t.Errorf("SearchRestaurants(%q, %q)[%d] = %s, want %s", tt.keyword, tt.cuisine, i, got[i].ID, tt.want[i])
			}
		}
	}
}

func TestMenuItemUpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	_, catalog, _ := newStores(t)
	seedRestaurant(t, catalog, model.Restaurant{ID: "rest-2", Name: "Sakura"})

	item, err := catalog.UpsertMenuItem(ctx, model.MenuItem{
		RestaurantID: "rest-1", Name: "Tiramisu", Description: "Espresso soaked", PriceCents: 850,
		Category: model.CategoryDessert, Available: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.ID == "" || item.Price != 8.5 {
		t.Fatalf("unexpected item %+v", item)
	}

	item.PriceCents = 900
	item.Available = false
	updated, err := catalog.UpsertMenuItem(ctx, item)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := catalog.GetMenuItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetMenuItem: %v", err)
	}
	if got.PriceCents != 900 || got.Available || !got.CreatedAt.Equal(updated.CreatedAt) {
		t.Fatalf("update not applied: %+v", got)
	}

	if _, err := catalog.UpsertMenuItem(ctx, model.MenuItem{ID: "missing", RestaurantID: "rest-1", Name: "x", Category: model.CategoryMain}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("update unknown: err = %v, want ErrNotFound", err)
	}
	moved := item
	moved.RestaurantID = "rest-2"
	if _, err := catalog.UpsertMenuItem(ctx, moved); !errors.Is(err, repository.ErrValidation) {
		t.Fatalf("move item: err = %v, want ErrValidation", err)
	}
	if _, err := catalog.UpsertMenuItem(ctx, model.MenuItem{RestaurantID: "rest-1", Name: "x", PriceCents: -1, Category: model.CategoryMain}); !errors.Is(err, repository.ErrValidation) {
		t.Fatalf("negative price: err = %v, want ErrValidation", err)
	}
	if _, err := catalog.UpsertMenuItem(ctx, model.MenuItem{RestaurantID: "rest-9", Name: "x", Category: model.CategoryMain}); !errors.Is(err, repository.ErrUnknownRestaurant) {
		t.Fatalf("unknown restaurant: err = %v, want ErrUnknownRestaurant", err)
	}

	hits, err := catalog.SearchMenuItems(ctx, "rest-1", "ESPRESSO", "all")
	if err != nil || len(hits) != 1 {
		t.Fatalf("SearchMenuItems = %v, %v", hits, err)
	}
	hits, err = catalog.SearchMenuItems(ctx, "rest-1", "", "main")
	if err != nil || len(hits) != 0 {
		t.Fatalf("category filter = %v, %v", hits, err)
	}
	if _, err := catalog.SearchMenuItems(ctx, "rest-404", "", ""); !errors.Is(err, repository.ErrUnknownRestaurant) {
		t.Fatalf("unknown restaurant search: err = %v", err)
	}

	if err := catalog.DeleteMenuItem(ctx, "nonexistent-id"); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
	if all, _ := catalog.ListMenuItems(ctx, ""); len(all) != 1 {
		t.Fatalf("delete of unknown id changed the store: %d items", len(all))
	}
	if err := catalog.DeleteMenuItem(ctx, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := catalog.GetMenuItem(ctx, item.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("deleted item still present: %v", err)
	}
}

func TestDeleteRestaurantBlocksWhenInUse(t *testing.T) {
	ctx := context.Background()
	_, catalog, reservations := newStores(t)
	seedRestaurant(t, catalog, model.Restaurant{ID: "rest-2", Name: "Empty"})

	if _, err := reservations.Create(ctx, draft("rest-1", 2), "test"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := catalog.DeleteRestaurant(ctx, "rest-1"); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("delete in-use: err = %v, want ErrConflict", err)
	}
	if err := catalog.DeleteRestaurant(ctx, "rest-2"); err != nil {
		t.Fatalf("delete empty: %v", err)
	}
	if err := catalog.DeleteRestaurant(ctx, "rest-2"); !errors.Is(err, repository.ErrUnknownRestaurant) {
		t.Fatalf("delete twice: err = %v", err)
	}
	if _, err := catalog.CreateRestaurant(ctx, model.Restaurant{ID: "rest-1", Name: "Dup", Cuisine: "x", PriceTier: 1, SeatingCapacity: 1}); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("duplicate id: err = %v", err)
	}
}

func TestPlaceSearch(t *testing.T) {
	ctx := context.Background()
	places := repository.NewPlaceRepo(dbtest.Open(t))
	for _, p := range []model.Place{
		{ID: "pl-1", Name: "Colosseum", Description: "Ancient amphitheatre", Country: "Italy", City: "Rome", Rating: 4.8, Category: model.PlaceHistorical},
		{ID: "pl-2", Name: "Dolomites", Description: "Mountain range", Country: "Italy", City: "Bolzano", Rating: 4.9, Category: model.PlaceNature},
		{ID: "pl-3", Name: "Kyoto Gardens", Description: "Ancient temples", Country: "Japan", City: "Kyoto", Rating: 4.7, Category: model.PlaceCultural},
	} {
		if _, err := places.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	got, err := places.Search(ctx, "ancient", "", "italy")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].ID != "pl-1" {
		t.Fatalf("Search = %+v", got)
	}
	got, _ = places.Search(ctx, "", "nature", "all")
	if len(got) != 1 || got[0].ID != "pl-2" {
		t.Fatalf("category filter = %+v", got)
	}
	if _, err := places.Create(ctx, model.Place{Name: "x", Category: "beach"}); !errors.Is(err, repository.ErrValidation) {
		t.Fatalf("invalid category: err = %v", err)
	}
}

func TestUserAndTokens(t *testing.T) {
	ctx := context.Background()
	db, _, _ := newStores(t)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	u, err := users.Create(ctx, repository.NewUser{
		Email: " Manager@Example.com ", Name: "Mia", Password: "pw", Role: model.RoleManager, RestaurantID: "rest-1",
	}, 4)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Email != "manager@example.com" || u.RestaurantID == nil || *u.RestaurantID != "rest-1" || !u.IsActive {
		t.Fatalf("unexpected user %+v", u)
	}
	if _, err := users.Create(ctx, repository.NewUser{Email: "manager@example.com", Password: "x", Role: model.RoleTourist}, 4); !errors.Is(err, repository.ErrEmailExists) {
		t.Fatalf("duplicate email: err = %v", err)
	}

	img := "https://img.example.com/mia.png"
	u, err = users.UpdateProfile(ctx, u.ID, nil, &img)
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if u.Name != "Mia" || u.ProfileImageURL == nil || *u.ProfileImageURL != img {
		t.Fatalf("profile not updated: %+v", u)
	}
	if err := users.SetPasswordHash(ctx, u.ID, "$2a$04$replaced"); err != nil {
		t.Fatalf("SetPasswordHash: %v", err)
	}
	if got, _ := users.GetByID(ctx, u.ID); got.PasswordHash != "$2a$04$replaced" {
		t.Fatalf("hash = %q", got.PasswordHash)
	}
	if err := users.SetPasswordHash(ctx, 9999, "x"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("SetPasswordHash unknown user: err = %v", err)
	}

	exp := nowPlusHour()
	if err := tokens.StoreRefresh(ctx, u.ID, "old", exp); err != nil {
		t.Fatalf("StoreRefresh: %v", err)
	}
	if uid, err := tokens.ValidateRefresh(ctx, "old"); err != nil || uid != u.ID {
		t.Fatalf("ValidateRefresh = %d, %v", uid, err)
	}
	if err := tokens.Rotate(ctx, u.ID, "old", "new", exp); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if err := tokens.Rotate(ctx, u.ID, "old", "newer", exp); !errors.Is(err, repository.ErrInvalidRefresh) {
		t.Fatalf("second rotate: err = %v", err)
	}
	if _, err := tokens.ValidateRefresh(ctx, "old"); !errors.Is(err, repository.ErrInvalidRefresh) {
		t.Fatalf("rotated token still valid: %v", err)
	}
	if err := tokens.RevokeAllForUser(ctx, u.ID); err != nil {
		t.Fatalf("RevokeAllForUser: %v", err)
	}
	if _, err := tokens.ValidateRefresh(ctx, "new"); !errors.Is(err, repository.ErrInvalidRefresh) {
		t.Fatalf("revoked token still valid: %v", err)
	}
}

func TestSearchFoldsUnicodeCase(t *testing.T) {
	ctx := context.Background()
	db, catalog, reservations := newStores(t)
	seedRestaurant(t, catalog, model.Restaurant{ID: "rest-fr", Name: "Café Élysée", Description: "ÖKO Küche", Cuisine: "Française"})
	if _, err := catalog.UpsertMenuItem(ctx, model.MenuItem{
		RestaurantID: "rest-fr", Name: "Crème Brûlée", PriceCents: 900, Category: model.CategoryDessert, Available: true,
	}); err != nil {
		t.Fatalf("UpsertMenuItem: %v", err)
	}
	d := draft("rest-fr", 2)
	d.CustomerName = "Zoë ÅSTRÖM"
	if _, err := reservations.Create(ctx, d, "test"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	places := repository.NewPlaceRepo(db)
	if _, err := places.Create(ctx, model.Place{
		ID: "pl-at", Name: "Schloss Schönbrunn", Country: "Österreich", City: "Wien", Rating: 4.7, Category: model.PlaceHistorical,
	}); err != nil {
		t.Fatalf("Create place: %v", err)
	}

	for _, kw := range []string{"élysée", "ÉLYSÉE", "Élysée", "öko", "KÜCHE"} {
		got, err := catalog.SearchRestaurants(ctx, kw, "")
		if err != nil || len(got) != 1 || got[0].ID != "rest-fr" {
			t.Errorf("SearchRestaurants(%q) = %+v, %v", kw, got, err)
		}
	}
	if got, err := catalog.SearchRestaurants(ctx, "", "FRANÇAISE"); err != nil || len(got) != 1 {
		t.Errorf("cuisine FRANÇAISE = %+v, %v", got, err)
	}
	for _, kw := range []string{"CRÈME", "brûlée"} {
		got, err := catalog.SearchMenuItems(ctx, "rest-fr", kw, "")
		if err != nil || len(got) != 1 {
			t.Errorf("SearchMenuItems(%q) = %+v, %v", kw, got, err)
		}
	}
	for _, kw := range []string{"åström", "ZOË"} {
		got, err := reservations.Query(ctx, model.ReservationFilter{Keyword: kw})
		if err != nil || len(got) != 1 {
			t.Errorf("Query(%q) = %+v, %v", kw, got, err)
		}
	}
	if got, err := places.Search(ctx, "SCHÖN", "", "österreich"); err != nil || len(got) != 1 || got[0].ID != "pl-at" {
		t.Errorf("places.Search = %+v, %v", got, err)
	}
}

func TestConcurrentTransitionsApplyOnce(t *testing.T) {
	ctx := context.Background()
	_, _, reservations := newStores(t)
	res, err := reservations.Create(ctx, draft("rest-1", 2), "test")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	const n = 20
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = reservations.Transition(ctx, res.ID, model.StatusConfirmed, "staff")
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, repository.ErrInvalidTransition):
			t.Errorf("unexpected error %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("%d transitions succeeded, want exactly 1", ok)
	}
	hist, err := reservations.History(ctx, res.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("history has %d rows, want 2: %+v", len(hist), hist)
	}
}

func TestCreateManagerNeedsRestaurant(t *testing.T) {
	ctx := context.Background()
	db, _, _ := newStores(t)
	users := repository.NewUserRepo(db)

	tests := []struct {
		name       string
		restaurant string
		want       error
	}{
		{"missing", "", repository.ErrValidation},
		{"blank", "   ", repository.ErrValidation},
		{"unknown", "rest-404", repository.ErrUnknownRestaurant},
	}
	for _, tt := range tests {
		_, err := users.Create(ctx, repository.NewUser{
			Email: tt.name + "@example.com", Password: "pw", Role: model.RoleManager, RestaurantID: tt.restaurant,
		}, 4)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}
	if _, err := users.GetByEmail(ctx, "unknown@example.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("rejected manager was stored: %v", err)
	}

	// restaurant ids are ignored for other roles
	u, err := users.Create(ctx, repository.NewUser{
		Email: "tourist@example.com", Password: "pw", Role: model.RoleTourist, RestaurantID: "rest-404",
	}, 4)
	if err != nil || u.RestaurantID != nil {
		t.Fatalf("tourist = %+v, %v", u, err)
	}
}
