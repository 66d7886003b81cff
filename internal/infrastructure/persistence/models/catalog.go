package models

import "time"

// ProductModel maps the storefront columns of the products table. images,
// tags and specifications are JSON columns.
type ProductModel struct {
	ID             string `gorm:"primaryKey"`
	Name           string
	Slug           *string
	Description    *string
	Price          float64
	CompareAtPrice *float64
	SKU            *string `gorm:"column:sku"`
	Quantity       *int
	TrackQuantity  *bool
	CategoryID     *string `gorm:"index"`
	Brand          *string
	MainImage      *string
	Images         []string       `gorm:"serializer:json"`
	Specifications map[string]any `gorm:"serializer:json"`
	Tags           []string       `gorm:"serializer:json"`
	Rating         *float64
	ReviewsCount   *int
	IsFeatured     *bool
	IsActive       *bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for the model
func (ProductModel) TableName() string {
	return "products"
}

// ProductSimilarityModel maps product_similar_products, the co-occurrence
// pairs maintained by the database
type ProductSimilarityModel struct {
	ProductID        string `gorm:"primaryKey"`
	SimilarProductID string `gorm:"primaryKey"`
	CommonUsers      int
	Similarity       float64
}

// TableName returns the table name for the model
func (ProductSimilarityModel) TableName() string {
	return "product_similar_products"
}
