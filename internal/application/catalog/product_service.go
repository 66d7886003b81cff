package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/catalog"
)

// Listing limits
const (
	DefaultListLimit = 10
	MaxListLimit     = 50
)

// ClampLimit bounds a requested listing size to 1..MaxListLimit
func ClampLimit(limit int) int {
	return max(1, min(limit, MaxListLimit))
}

// TopProductResponse is a product in the top-rated listing
type TopProductResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	ReviewsCount int     `json:"reviews_count"`
	MainImage    *string `json:"main_image"`
	CategoryID   *string `json:"category_id"`
}

// TopProductsResponse wraps the top-rated listing
type TopProductsResponse struct {
	Items []TopProductResponse `json:"items"`
}

// ProductResponse is a full storefront product
type ProductResponse struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Slug           *string        `json:"slug"`
	Description    *string        `json:"description"`
	Price          float64        `json:"price"`
	CompareAtPrice *float64       `json:"compareAtPrice"`
	SKU            *string        `json:"sku"`
	Quantity       int            `json:"quantity"`
	TrackQuantity  bool           `json:"trackQuantity"`
	CategoryID     *string        `json:"categoryId"`
	Brand          *string        `json:"brand"`
	MainImage      *string        `json:"mainImage"`
	Images         []string       `json:"images"`
	Specifications map[string]any `json:"specifications"`
	Tags           []string       `json:"tags"`
	Rating         float64        `json:"rating"`
	ReviewsCount   int            `json:"reviewsCount"`
	IsFeatured     bool           `json:"isFeatured"`
	IsActive       bool           `json:"isActive"`
	CreatedAt      *time.Time     `json:"createdAt"`
	UpdatedAt      *time.Time     `json:"updatedAt"`
}

// ProductService serves storefront product listings and recommendations
type ProductService struct {
	products catalog.ProductRepository
	signals  catalog.SignalRepository
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, signals catalog.SignalRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		products: products,
		signals:  signals,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// TopProducts returns the best rated active products
func (s *ProductService) TopProducts(ctx context.Context, limit int) (*TopProductsResponse, error) {
	products, err := s.products.List(ctx, catalog.ProductQuery{
		Order: catalog.OrderByRating,
		Limit: ClampLimit(limit),
	})
	if err != nil {
		return nil, err
	}

	items := make([]TopProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, TopProductResponse{
			ID:           p.ID,
			Name:         p.Name,
			Price:        p.Price,
			Rating:       p.Rating,
			ReviewsCount: p.ReviewsCount,
			MainImage:    nullable(p.MainImage),
			CategoryID:   nullable(p.CategoryID),
		})
	}
	return &TopProductsResponse{Items: items}, nil
}

func toProductResponse(p catalog.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	specs := p.Specifications
	if specs == nil {
		specs = map[string]any{}
	}
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           nullable(p.Slug),
		Description:    nullable(p.Description),
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		SKU:            nullable(p.SKU),
		Quantity:       p.Quantity,
		TrackQuantity:  p.TrackQuantity,
		CategoryID:     nullable(p.CategoryID),
		Brand:          nullable(p.Brand),
		MainImage:      nullable(p.MainImage),
		Images:         images,
		Specifications: specs,
		Tags:           tags,
		Rating:         p.Rating,
		ReviewsCount:   p.ReviewsCount,
		IsFeatured:     p.IsFeatured,
		IsActive:       p.IsActive,
		CreatedAt:      nullableTime(p.CreatedAt),
		UpdatedAt:      nullableTime(p.UpdatedAt),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
