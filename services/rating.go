package services

import "restaurants/models"

// AverageRating returns sum/count over the given reviews, or 0 when there are none.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	return sum / float64(len(reviews))
}

// WithAverageRating projects a restaurant with reviews already loaded.
func WithAverageRating(r models.Restaurant) models.RestaurantWithRating {
	return models.RestaurantWithRating{
		Restaurant:    r,
		AverageRating: AverageRating(r.Reviews),
	}
}

func WithAverageRatings(rs []models.Restaurant) []models.RestaurantWithRating {
	out := make([]models.RestaurantWithRating, 0, len(rs))
	for _, r := range rs {
		out = append(out, WithAverageRating(r))
	}
	return out
}
