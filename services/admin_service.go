package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"restaurants/cache"
	"restaurants/config"
	"restaurants/models"
)

const topRestaurantsLimit = 3

type AdminService struct {
	DB    *gorm.DB
	Cache *cache.Service
	TTL   config.CacheTTL
}

func NewAdminService(db *gorm.DB, c *cache.Service, ttl config.CacheTTL) *AdminService {
	return &AdminService{DB: db, Cache: c, TTL: ttl}
}

type Stats struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalRestaurants int64 `json:"totalRestaurants"`
	TotalReviews     int64 `json:"totalReviews"`
	TotalFavorites   int64 `json:"totalFavorites"`
}

type TopRestaurants struct {
	TopRated     []models.RestaurantStats `json:"topRated"`
	MostReviewed []models.RestaurantStats `json:"mostReviewed"`
}

func (s *AdminService) Stats(ctx context.Context) (Stats, error) {
	key := s.Cache.GenerateKey(cache.KeyAdminStats, nil)

	var stats Stats
	if s.Cache.Get(ctx, key, &stats) {
		return stats, nil
	}

	db := s.DB.WithContext(ctx)
	counts := []struct {
		model any
		dest  *int64
	}{
		{&models.User{}, &stats.TotalUsers},
		{&models.Restaurant{}, &stats.TotalRestaurants},
		{&models.Review{}, &stats.TotalReviews},
		{&models.Favorite{}, &stats.TotalFavorites},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return Stats{}, fmt.Errorf("admin stats: %w", err)
		}
	}

	s.Cache.Set(ctx, key, stats, s.TTL.Default)
	return stats, nil
}

// TopRestaurants reports the three best rated and the three most reviewed
// restaurants. Restaurants without reviews are left out.
func (s *AdminService) TopRestaurants(ctx context.Context) (TopRestaurants, error) {
	topRated, err := s.restaurantStats(ctx, "AVG(reviews.rating) DESC", "COUNT(reviews.id) DESC")
	if err != nil {
		return TopRestaurants{}, err
	}
	mostReviewed, err := s.restaurantStats(ctx, "COUNT(reviews.id) DESC", "AVG(reviews.rating) DESC")
	if err != nil {
		return TopRestaurants{}, err
	}
	return TopRestaurants{TopRated: topRated, MostReviewed: mostReviewed}, nil
}

func (s *AdminService) restaurantStats(ctx context.Context, orders ...string) ([]models.RestaurantStats, error) {
	tx := s.DB.WithContext(ctx).
		Model(&models.Restaurant{}).
		Select("restaurants.id, restaurants.name, restaurants.neighborhood, restaurants.cuisine_type, " +
			"AVG(reviews.rating) AS average_rating, COUNT(reviews.id) AS review_count").
		Joins("LEFT JOIN reviews ON reviews.restaurant_id = restaurants.id").
		Group("restaurants.id, restaurants.name, restaurants.neighborhood, restaurants.cuisine_type").
		Having("COUNT(reviews.id) > 0")
	for _, o := range orders {
		tx = tx.Order(o)
	}

	stats := []models.RestaurantStats{}
	if err := tx.Order("restaurants.id ASC").Limit(topRestaurantsLimit).Scan(&stats).Error; err != nil {
		return nil, fmt.Errorf("top restaurants: %w", err)
	}
	return stats, nil
}
