package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"restaurants/cache"
	"restaurants/config"
	"restaurants/models"
)

type RestaurantService struct {
	DB       *gorm.DB
	Cache    *cache.Service
	TTL      config.CacheTTL
	Geocoder *Geocoder
	Uploader ImageUploader
}

func NewRestaurantService(db *gorm.DB, c *cache.Service, ttl config.CacheTTL) *RestaurantService {
	return &RestaurantService{DB: db, Cache: c, TTL: ttl}
}

// RestaurantPage is one page of the restaurant listing.
type RestaurantPage struct {
	Data       []models.RestaurantWithRating `json:"data"`
	Total      int64                         `json:"total"`
	Page       int                           `json:"page"`
	Limit      int                           `json:"limit"`
	TotalPages int                           `json:"totalPages"`
}

type restaurantRow struct {
	ID            uint
	Name          string
	Neighborhood  *string
	Photograph    *string
	Address       *string
	Lat           *float64
	Lng           *float64
	Image         *string
	CuisineType   *string `gorm:"column:cuisine_type"`
	AverageRating float64 `gorm:"column:average_rating"`
}

func (r restaurantRow) toModel() models.RestaurantWithRating {
	return models.RestaurantWithRating{
		Restaurant: models.Restaurant{
			ID:           r.ID,
			Name:         r.Name,
			Neighborhood: r.Neighborhood,
			Photograph:   r.Photograph,
			Address:      r.Address,
			Lat:          r.Lat,
			Lng:          r.Lng,
			Image:        r.Image,
			CuisineType:  r.CuisineType,
		},
		AverageRating: r.AverageRating,
	}
}

const averageRatingExpr = "COALESCE(AVG(reviews.rating), 0)"

// listQuery joins reviews and applies the filters. Both the page query and the
// count query are built from it.
func (s *RestaurantService) listQuery(ctx context.Context, p ListParams) *gorm.DB {
	tx := s.DB.WithContext(ctx).
		Model(&models.Restaurant{}).
		Select("restaurants.*, " + averageRatingExpr + " AS average_rating").
		Joins("LEFT JOIN reviews ON reviews.restaurant_id = restaurants.id").
		Group("restaurants.id")

	for _, f := range BuildFilters(p) {
		tx = tx.Where(f.Column+" = ?", f.Value)
	}
	if p.MinRating != nil {
		tx = tx.Having(averageRatingExpr+" >= ?", *p.MinRating)
	}
	return tx
}

func (s *RestaurantService) FindAll(ctx context.Context, p ListParams) (RestaurantPage, error) {
	key := s.Cache.GenerateKey(cache.KeyRestaurants, p)

	var page RestaurantPage
	if s.Cache.Get(ctx, key, &page) {
		return page, nil
	}

	var total int64
	if err := s.DB.WithContext(ctx).Table("(?) AS filtered", s.listQuery(ctx, p)).Count(&total).Error; err != nil {
		return page, fmt.Errorf("count restaurants: %w", err)
	}

	var rows []restaurantRow
	err := s.listQuery(ctx, p).
		Order(BuildOrderBy(p.Sort, p.Order).String()).
		Order("restaurants.id ASC").
		Limit(p.Limit).
		Offset(Offset(p.Page, p.Limit)).
		Scan(&rows).Error
	if err != nil {
		return page, fmt.Errorf("list restaurants: %w", err)
	}

	page = RestaurantPage{
		Data:       make([]models.RestaurantWithRating, 0, len(rows)),
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: TotalPages(total, p.Limit),
	}
	for _, row := range rows {
		page.Data = append(page.Data, row.toModel())
	}

	s.Cache.Set(ctx, key, page, s.TTL.Default)
	return page, nil
}

func (s *RestaurantService) find(ctx context.Context, id uint) (models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.DB.WithContext(ctx).First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return restaurant, fmt.Errorf("restaurant %d: %w", id, ErrNotFound)
		}
		return restaurant, err
	}
	return restaurant, nil
}

func (s *RestaurantService) FindOne(ctx context.Context, id uint) (models.RestaurantWithRating, error) {
	key := s.Cache.GenerateKey(cache.KeyRestaurant, cache.IDParams{ID: id})

	var result models.RestaurantWithRating
	if s.Cache.Get(ctx, key, &result) {
		return result, nil
	}

	var restaurant models.Restaurant
	if err := s.DB.WithContext(ctx).Preload("Reviews").First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, fmt.Errorf("restaurant %d: %w", id, ErrNotFound)
		}
		return result, err
	}

	result = WithAverageRating(restaurant)
	s.Cache.Set(ctx, key, result, s.TTL.Long)
	return result, nil
}

func (s *RestaurantService) Create(ctx context.Context, restaurant *models.Restaurant) (models.RestaurantWithRating, error) {
	if err := restaurant.Validate(); err != nil {
		return models.RestaurantWithRating{}, err
	}
	s.geocode(ctx, restaurant)

	if err := s.DB.WithContext(ctx).Create(restaurant).Error; err != nil {
		return models.RestaurantWithRating{}, fmt.Errorf("create restaurant: %w", err)
	}

	s.invalidate(ctx, restaurant.ID)
	log.Printf("[RESTAURANT] created %d %q", restaurant.ID, restaurant.Name)
	return models.RestaurantWithRating{Restaurant: *restaurant}, nil
}

// geocode fills missing coordinates from the address. Lookup failures leave them empty.
func (s *RestaurantService) geocode(ctx context.Context, restaurant *models.Restaurant) {
	if s.Geocoder == nil || restaurant.Address == nil || *restaurant.Address == "" {
		return
	}
	if restaurant.Lat != nil || restaurant.Lng != nil {
		return
	}
	lat, lng, err := s.Geocoder.Lookup(ctx, *restaurant.Address)
	if err != nil {
		log.Printf("[RESTAURANT] geocoding %q: %v", *restaurant.Address, err)
		return
	}
	restaurant.Lat, restaurant.Lng = &lat, &lng
}

func (s *RestaurantService) Update(ctx context.Context, id uint, patch models.RestaurantPatch) (models.RestaurantWithRating, error) {
	restaurant, err := s.find(ctx, id)
	if err != nil {
		return models.RestaurantWithRating{}, err
	}

	patch.Apply(&restaurant)
	if err := restaurant.Validate(); err != nil {
		return models.RestaurantWithRating{}, err
	}
	if err := s.DB.WithContext(ctx).Save(&restaurant).Error; err != nil {
		return models.RestaurantWithRating{}, fmt.Errorf("update restaurant %d: %w", id, err)
	}

	s.invalidate(ctx, id)
	return s.FindOne(ctx, id)
}

// Delete removes the restaurant together with its reviews and favorites.
func (s *RestaurantService) Delete(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("restaurant %d: %w", id, ErrNotFound)
			}
			return err
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&restaurant).Error
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)
	s.Cache.InvalidateEntity(ctx, cache.KeyRestaurantReviews, id)
	log.Printf("[RESTAURANT] deleted %d", id)
	return nil
}

// UploadImage stores file with the configured uploader and points the restaurant image at it.
func (s *RestaurantService) UploadImage(ctx context.Context, id uint, file any, filename string) (models.RestaurantWithRating, error) {
	if s.Uploader == nil {
		return models.RestaurantWithRating{}, ErrUploadUnavailable
	}
	if _, err := s.find(ctx, id); err != nil {
		return models.RestaurantWithRating{}, err
	}

	url, err := s.Uploader.Upload(ctx, file, fmt.Sprintf("restaurant-%d-%s", id, strings.TrimSuffix(filename, filepath.Ext(filename))))
	if err != nil {
		return models.RestaurantWithRating{}, err
	}

	err = s.DB.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", id).Update("image", url).Error
	if err != nil {
		return models.RestaurantWithRating{}, fmt.Errorf("update restaurant %d image: %w", id, err)
	}

	s.invalidate(ctx, id)
	return s.FindOne(ctx, id)
}

func (s *RestaurantService) invalidate(ctx context.Context, id uint) {
	s.Cache.InvalidateEntity(ctx, cache.KeyRestaurant, id)
	s.Cache.InvalidateEntityList(ctx, cache.KeyRestaurants)
	s.Cache.Delete(ctx, cache.KeyAdminStats)
}
