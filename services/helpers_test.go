package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"restaurants/cache"
	"restaurants/config"
	"restaurants/models"
)

var testTTL = config.CacheTTL{
	Short:    time.Minute,
	Default:  5 * time.Minute,
	Long:     10 * time.Minute,
	VeryLong: time.Hour,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.ConnectDB(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}, false)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestCache() *cache.Service {
	return cache.NewService(cache.NewMemoryStore(256, time.Hour))
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func seedRestaurant(t *testing.T, db *gorm.DB, name, cuisine, neighborhood string, ratings ...float64) models.Restaurant {
	t.Helper()
	r := models.Restaurant{Name: name, CuisineType: strPtr(cuisine), Neighborhood: strPtr(neighborhood)}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("seed restaurant %s: %v", name, err)
	}
	for _, rating := range ratings {
		review := models.Review{RestaurantID: r.ID, UserID: 1, Rating: rating}
		if err := db.Create(&review).Error; err != nil {
			t.Fatalf("seed review: %v", err)
		}
	}
	return r
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) models.User {
	t.Helper()
	u := models.User{Email: email, Password: "x", Name: email, Role: role}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}
