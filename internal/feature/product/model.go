package product

import "time"

// ProductModel defines the products schema for migration; data access
// goes through the generic record store.
type ProductModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"size:100;not null"`
	Description string  `gorm:"type:text"`
	Price       float64 `gorm:"type:decimal(10,2);not null;default:0"`
	Stock       int64   `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProductModel) TableName() string { return "products" }

// Product is the plain view handed to services and templates.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Stock       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
