package services

import (
	"testing"

	"restaurants/models"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []float64
		want    float64
	}{
		{name: "no reviews", ratings: nil, want: 0},
		{name: "single", ratings: []float64{3}, want: 3},
		{name: "halves", ratings: []float64{4.5, 3.5}, want: 4},
		{name: "quarters", ratings: []float64{5, 4.5}, want: 4.75},
		{name: "zero ratings", ratings: []float64{0, 0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reviews []models.Review
			for _, r := range tt.ratings {
				reviews = append(reviews, models.Review{Rating: r})
			}
			if got := AverageRating(reviews); got != tt.want {
				t.Errorf("AverageRating() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithAverageRatings(t *testing.T) {
	rs := []models.Restaurant{
		{ID: 1, Name: "A", Reviews: []models.Review{{Rating: 4}, {Rating: 5}}},
		{ID: 2, Name: "B"},
	}

	got := WithAverageRatings(rs)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].AverageRating != 4.5 || got[1].AverageRating != 0 {
		t.Errorf("averages = %v, %v; want 4.5, 0", got[0].AverageRating, got[1].AverageRating)
	}
	if got[0].Name != "A" {
		t.Errorf("Name = %s, want A", got[0].Name)
	}
}
