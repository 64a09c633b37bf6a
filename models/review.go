package models

import "time"

type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"index;not null" json:"restaurant_id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	Rating       float64   `gorm:"not null" json:"rating"` // 0..5
	Comments     *string   `json:"comments"`
	Date         *string   `json:"date"` // free-form visit date, e.g. "October 26, 2016"
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type ReviewInput struct {
	Rating   *float64 `json:"rating" binding:"required,min=0,max=5"`
	Comments *string  `json:"comments"`
	Date     *string  `json:"date"`
}

type ReviewPatch struct {
	Rating   *float64 `json:"rating" binding:"omitempty,min=0,max=5"`
	Comments *string  `json:"comments"`
	Date     *string  `json:"date"`
}

func (p ReviewPatch) Apply(r *Review) {
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Comments != nil {
		r.Comments = p.Comments
	}
	if p.Date != nil {
		r.Date = p.Date
	}
}
