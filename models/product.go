package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string  `gorm:"not null" json:"name"`
	Description   string  `json:"description"`
	OriginalPrice float64 `json:"original_price"`
	SellingPrice  float64 `gorm:"not null" json:"selling_price"`
	ImageURL      string  `json:"image_url"`
	Stock         int     `json:"stock"`
	CategoryID    *uint   `gorm:"index" json:"category_id"`
	Category      *Category `json:"category,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
