package catalog

import (
	"context"
	"time"
)

// Product is a storefront product
type Product struct {
	ID             string
	Name           string
	Slug           string
	Description    string
	Price          float64
	CompareAtPrice *float64
	SKU            string
	Quantity       int
	TrackQuantity  bool
	CategoryID     string
	Brand          string
	MainImage      string
	Images         []string
	Specifications map[string]any
	Tags           []string
	Rating         float64
	ReviewsCount   int
	IsFeatured     bool
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InStock reports whether the product can be sold. Products that do not
// track quantity are always in stock.
func (p Product) InStock() bool {
	return !p.TrackQuantity || p.Quantity > 0
}

// ProductOrder selects the sort of a product listing
type ProductOrder int

const (
	OrderUnspecified ProductOrder = iota
	// OrderByRating sorts by rating, best first
	OrderByRating
	// OrderByPopularity sorts by review count, then rating
	OrderByPopularity
)

// ProductQuery filters a product listing. Empty filters match everything;
// non-empty ones are combined with AND.
type ProductQuery struct {
	IDs             []string
	CategoryIDs     []string
	Brands          []string
	IncludeInactive bool
	Order           ProductOrder
	Limit           int
}

// ProductRepository lists storefront products
type ProductRepository interface {
	List(ctx context.Context, q ProductQuery) ([]Product, error)
}

// ViewCount is the number of recorded views of a product
type ViewCount struct {
	ProductID string
	Views     int
}

// Similarity links a product to one bought or viewed by the same users
type Similarity struct {
	ProductID        string
	SimilarProductID string
	CommonUsers      int
	Score            float64
}

// SignalRepository reads the behavioral data recommendations are built from
type SignalRepository interface {
	// ProductEvents returns the user's product interactions, newest first
	ProductEvents(ctx context.Context, userID string, limit int) ([]ActivityEvent, error)
	// TopViewed returns the most viewed products, most views first
	TopViewed(ctx context.Context, limit int) ([]ViewCount, error)
	// SimilarTo returns the similarities of the given products, best first
	SimilarTo(ctx context.Context, productIDs []string, limit int) ([]Similarity, error)
}
