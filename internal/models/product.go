package models

import "time"

// Product is a catalog item. Category is a free-text label, not a foreign key,
// and Image names a file in the image store (nil when no image was uploaded).
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Category    string    `gorm:"size:100;index" json:"category"`
	Image       *string   `gorm:"size:255" json:"image"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// ProductFields are the admin-editable columns of a product, image excluded.
type ProductFields struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
}
