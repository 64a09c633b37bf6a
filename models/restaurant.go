package models

import (
	"github.com/go-playground/validator/v10"
)

type Restaurant struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Name         string   `gorm:"type:text;not null" json:"name" validate:"required"`
	Neighborhood *string  `gorm:"type:text;index" json:"neighborhood"`
	Photograph   *string  `gorm:"type:text" json:"photograph"`
	Address      *string  `gorm:"type:text" json:"address"`
	Lat          *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng          *float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
	Image        *string  `gorm:"type:text" json:"image"`
	CuisineType  *string  `gorm:"column:cuisine_type;type:text;index" json:"cuisine_type"`
	Reviews      []Review `gorm:"foreignKey:RestaurantID" json:"-"`
}

// RestaurantWithRating is a Restaurant projected with its computed average
// rating. It is never persisted.
type RestaurantWithRating struct {
	Restaurant
	AverageRating float64 `json:"averageRating"`
}

// RestaurantStats is one row of the admin top-restaurants report.
type RestaurantStats struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Neighborhood  *string `json:"neighborhood"`
	CuisineType   *string `json:"cuisine_type"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int64   `json:"reviewCount"`
}

var validate = validator.New()

func (r *Restaurant) Validate() error {
	return validate.Struct(r)
}

// RestaurantPatch carries the fields of a partial update. Nil fields are left as is.
type RestaurantPatch struct {
	Name         *string  `json:"name" binding:"omitempty,min=1"`
	Neighborhood *string  `json:"neighborhood"`
	Photograph   *string  `json:"photograph"`
	Address      *string  `json:"address"`
	Lat          *float64 `json:"lat" binding:"omitempty,gte=-90,lte=90"`
	Lng          *float64 `json:"lng" binding:"omitempty,gte=-180,lte=180"`
	Image        *string  `json:"image"`
	CuisineType  *string  `json:"cuisine_type"`
}

func (p RestaurantPatch) Apply(r *Restaurant) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Neighborhood != nil {
		r.Neighborhood = p.Neighborhood
	}
	if p.Photograph != nil {
		r.Photograph = p.Photograph
	}
	if p.Address != nil {
		r.Address = p.Address
	}
	if p.Lat != nil {
		r.Lat = p.Lat
	}
	if p.Lng != nil {
		r.Lng = p.Lng
	}
	if p.Image != nil {
		r.Image = p.Image
	}
	if p.CuisineType != nil {
		r.CuisineType = p.CuisineType
	}
}
