package models

import (
	"time"
)

// ProductImage is one entry of a product's image gallery, stored as JSON
type ProductImage struct {
	URL       string `json:"url"`
	Alt       string `json:"alt,omitempty"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

// Product represents a catalog item sold on the marketplace
type Product struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	SKU         string  `gorm:"uniqueIndex" json:"sku"`
	Category    *string `gorm:"index" json:"category"`
	Subcategory string  `json:"subcategory,omitempty"`

	// Owning retailer account
	RetailerID string `gorm:"index" json:"retailer_id"`

	// Pricing (sale price wins over base price when set)
	BasePrice *float64 `json:"base_price"`
	SalePrice *float64 `json:"sale_price"`
	Currency  string   `gorm:"default:USD" json:"currency"`

	Images []ProductImage `gorm:"serializer:json" json:"images"`

	// Aggregated review stats
	RatingAverage float64 `gorm:"default:0;index" json:"rating_average"`
	RatingCount   int     `gorm:"default:0" json:"rating_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayTitle returns the product name, or a placeholder when the
// stored document has none
func (p *Product) DisplayTitle() string {
	if p.Name == "" {
		return "Product"
	}
	return p.Name
}

// CurrentPrice resolves sale price if present, else base price, else nil
func (p *Product) CurrentPrice() *float64 {
	if p.SalePrice != nil {
		return p.SalePrice
	}
	return p.BasePrice
}

// PrimaryImageURL returns the first image's URL, or nil when the
// product has no images
func (p *Product) PrimaryImageURL() *string {
	if len(p.Images) == 0 {
		return nil
	}
	return &p.Images[0].URL
}
