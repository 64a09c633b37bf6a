package models

import "time"

type Favorite struct {
	UserID       uint        `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	RestaurantID uint        `gorm:"primaryKey;autoIncrement:false" json:"restaurant_id"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
}
