package services

import (
	"context"
	"errors"
	"testing"

	"restaurants/models"
)

func TestReviewOwnership(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	s := NewReviewService(db, newTestCache(), testTTL)

	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	other := seedUser(t, db, "other@example.com", models.RoleUser)
	r := seedRestaurant(t, db, "Place", "Asian", "Manhattan")

	review, err := s.Create(ctx, owner.ID, r.ID, models.ReviewInput{Rating: floatPtr(4), Comments: strPtr("good")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Update(ctx, other.ID, review.ID, models.ReviewPatch{Rating: floatPtr(1)})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("non-owner update err = %v, want ErrNotFound", err)
	}
	if got.ID != 0 || got.Comments != nil {
		t.Errorf("non-owner update leaked review data: %+v", got)
	}
	if err := s.Delete(ctx, other.ID, review.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("non-owner delete err = %v, want ErrNotFound", err)
	}

	updated, err := s.Update(ctx, owner.ID, review.ID, models.ReviewPatch{Rating: floatPtr(2.5)})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Rating != 2.5 || updated.Comments == nil || *updated.Comments != "good" {
		t.Errorf("owner update result = %+v", updated)
	}

	if err := s.Delete(ctx, owner.ID, review.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := s.Delete(ctx, owner.ID, review.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestCreateReviewRequiresRestaurant(t *testing.T) {
	db := newTestDB(t)
	s := NewReviewService(db, newTestCache(), testTTL)

	_, err := s.Create(context.Background(), 1, 404, models.ReviewInput{Rating: floatPtr(3)})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	var count int64
	db.Model(&models.Review{}).Count(&count)
	if count != 0 {
		t.Errorf("%d reviews inserted for a missing restaurant", count)
	}
}

func TestFindByRestaurantCache(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	s := NewReviewService(db, newTestCache(), testTTL)

	user := seedUser(t, db, "u@example.com", models.RoleUser)
	r := seedRestaurant(t, db, "Place", "Asian", "Manhattan")

	reviews, err := s.FindByRestaurant(ctx, r.ID)
	if err != nil {
		t.Fatalf("FindByRestaurant: %v", err)
	}
	if len(reviews) != 0 {
		t.Fatalf("len = %d, want 0", len(reviews))
	}

	first, _ := s.Create(ctx, user.ID, r.ID, models.ReviewInput{Rating: floatPtr(3)})
	second, _ := s.Create(ctx, user.ID, r.ID, models.ReviewInput{Rating: floatPtr(5)})

	reviews, _ = s.FindByRestaurant(ctx, r.ID)
	if len(reviews) != 2 {
		t.Fatalf("len after create = %d, want 2", len(reviews))
	}
	if reviews[0].ID != second.ID || reviews[1].ID != first.ID {
		t.Errorf("reviews not newest first: %d, %d", reviews[0].ID, reviews[1].ID)
	}

	_ = s.Delete(ctx, user.ID, first.ID)
	reviews, _ = s.FindByRestaurant(ctx, r.ID)
	if len(reviews) != 1 {
		t.Errorf("len after delete = %d, want 1", len(reviews))
	}

	if _, err := s.FindByRestaurant(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing restaurant err = %v, want ErrNotFound", err)
	}
}

func TestFindByUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	s := NewReviewService(db, newTestCache(), testTTL)

	alice := seedUser(t, db, "alice@example.com", models.RoleUser)
	bob := seedUser(t, db, "bob@example.com", models.RoleUser)
	r := seedRestaurant(t, db, "Place", "Asian", "Manhattan")

	_, _ = s.Create(ctx, alice.ID, r.ID, models.ReviewInput{Rating: floatPtr(3)})
	_, _ = s.Create(ctx, alice.ID, r.ID, models.ReviewInput{Rating: floatPtr(4)})
	_, _ = s.Create(ctx, bob.ID, r.ID, models.ReviewInput{Rating: floatPtr(5)})

	got, err := s.FindByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, r := range got {
		if r.UserID != alice.ID {
			t.Errorf("review %d belongs to user %d", r.ID, r.UserID)
		}
	}
	if got[0].Rating != 4 {
		t.Errorf("newest first: got rating %v first", got[0].Rating)
	}
}
