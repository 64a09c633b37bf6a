package services

import (
	"context"
	"testing"
	"time"

	"restaurants/config"
	"restaurants/models"
)

func TestStatsInvalidation(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	c := newTestCache()
	cfg := config.Config{JWTSecret: "secret", JWTExpiry: time.Hour, CacheTTL: testTTL}

	admin := NewAdminService(db, c, testTTL)
	auth := NewAuthService(db, c, cfg)
	favorites := NewFavoriteService(db, c)
	reviews := NewReviewService(db, c, testTTL)
	restaurants := NewRestaurantService(db, c, testTTL)

	before, err := admin.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	reg, err := auth.Register(ctx, RegisterInput{Email: "new@example.com", Password: "secret1", Name: "New"}, "127.0.0.1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	after, _ := admin.Stats(ctx)
	if after.TotalUsers != before.TotalUsers+1 {
		t.Errorf("TotalUsers = %d, want %d", after.TotalUsers, before.TotalUsers+1)
	}

	created, _ := restaurants.Create(ctx, &models.Restaurant{Name: "Stat"})
	after, _ = admin.Stats(ctx)
	if after.TotalRestaurants != 1 {
		t.Errorf("TotalRestaurants = %d, want 1", after.TotalRestaurants)
	}

	_, _ = reviews.Create(ctx, reg.UserID, created.ID, models.ReviewInput{Rating: floatPtr(5)})
	after, _ = admin.Stats(ctx)
	if after.TotalReviews != 1 {
		t.Errorf("TotalReviews = %d, want 1", after.TotalReviews)
	}

	_, _ = favorites.Add(ctx, reg.UserID, created.ID)
	after, _ = admin.Stats(ctx)
	if after.TotalFavorites != 1 {
		t.Errorf("TotalFavorites = %d, want 1", after.TotalFavorites)
	}

	_ = restaurants.Delete(ctx, created.ID)
	after, _ = admin.Stats(ctx)
	if after.TotalRestaurants != 0 || after.TotalReviews != 0 || after.TotalFavorites != 0 {
		t.Errorf("stats after delete = %+v", after)
	}
}

func TestTopRestaurants(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	s := NewAdminService(db, newTestCache(), testTTL)

	seedRestaurant(t, db, "Unreviewed", "Asian", "Manhattan")
	seedRestaurant(t, db, "Perfect", "Asian", "Manhattan", 5)
	seedRestaurant(t, db, "Popular", "Pizza", "Queens", 4, 4, 4, 4)
	seedRestaurant(t, db, "Good", "Mexican", "Bronx", 4.5, 4.5)
	seedRestaurant(t, db, "Bad", "Diner", "Brooklyn", 1, 2, 1)

	top, err := s.TopRestaurants(ctx)
	if err != nil {
		t.Fatalf("TopRestaurants: %v", err)
	}

	names := func(stats []models.RestaurantStats) []string {
		var out []string
		for _, s := range stats {
			out = append(out, s.Name)
		}
		return out
	}

	wantRated := []string{"Perfect", "Good", "Popular"}
	if got := names(top.TopRated); len(got) != 3 || got[0] != wantRated[0] || got[1] != wantRated[1] || got[2] != wantRated[2] {
		t.Errorf("TopRated = %v, want %v", got, wantRated)
	}

	wantReviewed := []string{"Popular", "Bad", "Good"}
	if got := names(top.MostReviewed); len(got) != 3 || got[0] != wantReviewed[0] || got[1] != wantReviewed[1] || got[2] != wantReviewed[2] {
		t.Errorf("MostReviewed = %v, want %v", got, wantReviewed)
	}

	for _, r := range append(top.TopRated, top.MostReviewed...) {
		if r.ReviewCount == 0 {
			t.Errorf("%s has no reviews but was reported", r.Name)
		}
	}
	if top.TopRated[1].AverageRating != 4.5 || top.TopRated[1].ReviewCount != 2 {
		t.Errorf("Good stats = %+v", top.TopRated[1])
	}
}
