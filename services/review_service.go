package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"restaurants/cache"
	"restaurants/config"
	"restaurants/models"
)

type ReviewService struct {
	DB    *gorm.DB
	Cache *cache.Service
	TTL   config.CacheTTL
}

func NewReviewService(db *gorm.DB, c *cache.Service, ttl config.CacheTTL) *ReviewService {
	return &ReviewService{DB: db, Cache: c, TTL: ttl}
}

func (s *ReviewService) restaurantExists(ctx context.Context, id uint) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("restaurant %d: %w", id, ErrNotFound)
	}
	return nil
}

// FindByRestaurant lists a restaurant's reviews, newest first.
func (s *ReviewService) FindByRestaurant(ctx context.Context, restaurantID uint) ([]models.Review, error) {
	key := s.Cache.GenerateKey(cache.KeyRestaurantReviews, cache.IDParams{ID: restaurantID})

	reviews := []models.Review{}
	if s.Cache.Get(ctx, key, &reviews) {
		return reviews, nil
	}

	if err := s.restaurantExists(ctx, restaurantID); err != nil {
		return nil, err
	}
	err := s.DB.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews of restaurant %d: %w", restaurantID, err)
	}

	s.Cache.Set(ctx, key, reviews, s.TTL.Default)
	return reviews, nil
}

func (s *ReviewService) Create(ctx context.Context, userID, restaurantID uint, input models.ReviewInput) (models.Review, error) {
	if err := s.restaurantExists(ctx, restaurantID); err != nil {
		return models.Review{}, err
	}

	review := models.Review{
		RestaurantID: restaurantID,
		UserID:       userID,
		Comments:     input.Comments,
		Date:         input.Date,
	}
	if input.Rating != nil {
		review.Rating = *input.Rating
	}

	if err := s.DB.WithContext(ctx).Create(&review).Error; err != nil {
		return models.Review{}, fmt.Errorf("create review: %w", err)
	}

	s.invalidate(ctx, restaurantID)
	log.Printf("[REVIEW] created %d for restaurant %d by user %d", review.ID, restaurantID, userID)
	return review, nil
}

// FindByUser lists the caller's own reviews, newest first.
func (s *ReviewService) FindByUser(ctx context.Context, userID uint) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews of user %d: %w", userID, err)
	}
	return reviews, nil
}

// findOwned loads a review scoped to its author. Someone else's review is reported as not found.
func (s *ReviewService) findOwned(ctx context.Context, userID, reviewID uint) (models.Review, error) {
	var review models.Review
	err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", reviewID, userID).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return review, fmt.Errorf("review %d: %w", reviewID, ErrNotFound)
	}
	return review, err
}

func (s *ReviewService) Update(ctx context.Context, userID, reviewID uint, patch models.ReviewPatch) (models.Review, error) {
	review, err := s.findOwned(ctx, userID, reviewID)
	if err != nil {
		return models.Review{}, err
	}

	patch.Apply(&review)
	if err := s.DB.WithContext(ctx).Save(&review).Error; err != nil {
		return models.Review{}, fmt.Errorf("update review %d: %w", reviewID, err)
	}

	s.invalidate(ctx, review.RestaurantID)
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, userID, reviewID uint) error {
	review, err := s.findOwned(ctx, userID, reviewID)
	if err != nil {
		return err
	}

	if err := s.DB.WithContext(ctx).Delete(&review).Error; err != nil {
		return fmt.Errorf("delete review %d: %w", reviewID, err)
	}

	s.invalidate(ctx, review.RestaurantID)
	log.Printf("[REVIEW] deleted %d by user %d", reviewID, userID)
	return nil
}

// invalidate drops every projection carrying the restaurant's reviews or rating.
func (s *ReviewService) invalidate(ctx context.Context, restaurantID uint) {
	s.Cache.InvalidateEntity(ctx, cache.KeyRestaurantReviews, restaurantID)
	s.Cache.InvalidateEntity(ctx, cache.KeyRestaurant, restaurantID)
	s.Cache.InvalidateEntityList(ctx, cache.KeyRestaurants)
	s.Cache.Delete(ctx, cache.KeyAdminStats)
}
