package model

import (
	"time"
)

// Purchase is the user's cart while PurchasedAt is nil and a completed
// purchase once checkout stamps PurchasedAt and PurchaseTotal.
type Purchase struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	PurchasedAt   *time.Time `gorm:"index" json:"date,omitempty"`
	PurchaseTotal *int64     `json:"purchase_total,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	User   User    `gorm:"foreignKey:UserID" json:"-"`
	Orders []Order `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Purchase) TableName() string {
	return "purchases"
}

func (p *Purchase) IsOpen() bool {
	return p.PurchasedAt == nil
}

// Order is a single unit line of a purchase; repeated rows encode quantity.
type Order struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	PurchaseID uint      `gorm:"not null;index" json:"purchase_id"`
	ProductID  uint      `gorm:"not null;index" json:"product_id"`
	CreatedAt  time.Time `json:"created_at"`

	Purchase Purchase `gorm:"foreignKey:PurchaseID" json:"-"`
	Product  Product  `gorm:"foreignKey:ProductID" json:"product"`
}

func (Order) TableName() string {
	return "orders"
}

// LineItem is one distinct product of a purchase with its unit count.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int64   `json:"quantity"`
	Subtotal int64   `json:"subtotal"`
}

// PurchaseSummary is a purchase with its orders grouped by product.
type PurchaseSummary struct {
	ID            uint       `json:"id"`
	PurchasedAt   *time.Time `json:"date,omitempty"`
	PurchaseTotal int64      `json:"purchase_total"`
	Items         []LineItem `json:"items"`
}

// TotalOf sums the subtotals of items.
func TotalOf(items []LineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Subtotal
	}
	return total
}
