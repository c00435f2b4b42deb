package models

import (
	"time"
)

// Order represents a purchase placed by a retailer account.
// Orders are read-only inputs to the recommendation pipeline.
type Order struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	OrderNumber string `gorm:"uniqueIndex" json:"order_number"`
	RetailerID  string `gorm:"not null;index" json:"retailer_id"`
	Status      string `gorm:"default:pending" json:"status"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is one line item of an order. ProductID is nullable:
// legacy orders carry items whose product reference was never written,
// and the pipeline skips those silently.
type OrderItem struct {
	ID        string  `gorm:"primaryKey;type:uuid" json:"id"`
	OrderID   string  `gorm:"not null;index" json:"order_id"`
	ProductID *string `gorm:"type:uuid;index" json:"product_id"`

	// Name is denormalized from the product at order time
	Name      string  `json:"name"`
	Quantity  int     `gorm:"default:1" json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
