package model

import (
	"time"

	"gorm.io/gorm"
)

// Product prices are integers in the smallest currency unit.
type Product struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	Brand     string         `gorm:"type:varchar(100)" json:"brand"`
	Price     int64          `gorm:"not null" json:"price"`
	ImageURL  string         `gorm:"type:varchar(250);not null" json:"img_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Orders []Order `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
