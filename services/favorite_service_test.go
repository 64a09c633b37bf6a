package services

import (
	"context"
	"errors"
	"testing"

	"restaurants/models"
)

func TestFavoriteDuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	s := NewFavoriteService(db, newTestCache())

	user := seedUser(t, db, "u@example.com", models.RoleUser)
	r := seedRestaurant(t, db, "Place", "Asian", "Manhattan")

	if _, err := s.Add(ctx, user.ID, r.ID); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if _, err := s.Add(ctx, user.ID, r.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("second Add err = %v, want ErrConflict", err)
	}
}

func TestFavoriteMissingRestaurant(t *testing.T) {
	db := newTestDB(t)
	s := NewFavoriteService(db, newTestCache())

	if _, err := s.Add(context.Background(), 1, 77); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := s.Remove(context.Background(), 1, 77); !errors.Is(err, ErrNotFound) {
		t.Errorf("remove err = %v, want ErrNotFound", err)
	}
}

func TestFavoriteList(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	s := NewFavoriteService(db, newTestCache())

	user := seedUser(t, db, "u@example.com", models.RoleUser)
	first := seedRestaurant(t, db, "First", "Asian", "Manhattan", 4.5, 3.5)
	second := seedRestaurant(t, db, "Second", "Pizza", "Queens")

	_, _ = s.Add(ctx, user.ID, first.ID)
	_, _ = s.Add(ctx, user.ID, second.ID)

	got, err := s.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	byID := map[uint]FavoriteRestaurant{}
	for _, f := range got {
		byID[f.RestaurantID] = f
	}
	if byID[first.ID].Restaurant.Name != "First" || byID[first.ID].Restaurant.AverageRating != 4 {
		t.Errorf("first favorite = %+v", byID[first.ID].Restaurant)
	}
	if byID[second.ID].Restaurant.AverageRating != 0 {
		t.Errorf("second favorite averageRating = %v, want 0", byID[second.ID].Restaurant.AverageRating)
	}

	if err := s.Remove(ctx, user.ID, first.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	got, _ = s.List(ctx, user.ID)
	if len(got) != 1 || got[0].RestaurantID != second.ID {
		t.Errorf("after remove = %+v", got)
	}

	other, _ := s.List(ctx, user.ID+100)
	if len(other) != 0 {
		t.Errorf("other user sees %d favorites", len(other))
	}
}
