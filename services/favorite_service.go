package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"restaurants/cache"
	"restaurants/models"
)

type FavoriteService struct {
	DB    *gorm.DB
	Cache *cache.Service
}

func NewFavoriteService(db *gorm.DB, c *cache.Service) *FavoriteService {
	return &FavoriteService{DB: db, Cache: c}
}

// FavoriteRestaurant is a favorite with its restaurant and the restaurant's rating.
type FavoriteRestaurant struct {
	RestaurantID uint                        `json:"restaurant_id"`
	CreatedAt    time.Time                   `json:"created_at"`
	Restaurant   models.RestaurantWithRating `json:"restaurant"`
}

func (s *FavoriteService) Add(ctx context.Context, userID, restaurantID uint) (models.Favorite, error) {
	var restaurant models.Restaurant
	if err := s.DB.WithContext(ctx).First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Favorite{}, fmt.Errorf("restaurant %d: %w", restaurantID, ErrNotFound)
		}
		return models.Favorite{}, err
	}

	var existing int64
	err := s.DB.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Count(&existing).Error
	if err != nil {
		return models.Favorite{}, err
	}
	if existing > 0 {
		return models.Favorite{}, fmt.Errorf("restaurant %d already in favorites: %w", restaurantID, ErrConflict)
	}

	favorite := models.Favorite{UserID: userID, RestaurantID: restaurantID}
	if err := s.DB.WithContext(ctx).Create(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Favorite{}, fmt.Errorf("restaurant %d already in favorites: %w", restaurantID, ErrConflict)
		}
		return models.Favorite{}, fmt.Errorf("add favorite: %w", err)
	}

	s.Cache.Delete(ctx, cache.KeyAdminStats)
	log.Printf("[FAVORITE] restaurant %d added by user %d", restaurantID, userID)
	return favorite, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, restaurantID uint) error {
	res := s.DB.WithContext(ctx).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return fmt.Errorf("remove favorite: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("restaurant %d not in favorites: %w", restaurantID, ErrNotFound)
	}

	s.Cache.Delete(ctx, cache.KeyAdminStats)
	log.Printf("[FAVORITE] restaurant %d removed by user %d", restaurantID, userID)
	return nil
}

// List returns the caller's favorites, newest first.
func (s *FavoriteService) List(ctx context.Context, userID uint) ([]FavoriteRestaurant, error) {
	var favorites []models.Favorite
	err := s.DB.WithContext(ctx).
		Preload("Restaurant.Reviews").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("restaurant_id DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites of user %d: %w", userID, err)
	}

	out := make([]FavoriteRestaurant, 0, len(favorites))
	for _, f := range favorites {
		item := FavoriteRestaurant{RestaurantID: f.RestaurantID, CreatedAt: f.CreatedAt}
		if f.Restaurant != nil {
			item.Restaurant = WithAverageRating(*f.Restaurant)
		}
		out = append(out, item)
	}
	return out, nil
}
