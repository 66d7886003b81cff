package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/catalog"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/interfaces/http/middleware"
)

// ProductService serves the storefront product listings
type ProductService interface {
	TopProducts(ctx context.Context, limit int) (*catalogapp.TopProductsResponse, error)
	Recommend(ctx context.Context, userID string, limit int) (*catalogapp.RecommendationsResponse, error)
}

// MeResponse is the authenticated caller
type MeResponse struct {
	ID    string  `json:"id"`
	Email *string `json:"email"`
}

// StorefrontHandler serves the customer-facing API of the mobile app
type StorefrontHandler struct {
	BaseHandler
	products ProductService
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(products ProductService) *StorefrontHandler {
	return &StorefrontHandler{products: products}
}

// Me godoc
//
//	@ID				getMe
//	@Summary		Current user
//	@Description	Returns the id and email of the bearer token's user
//	@Tags			storefront
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=MeResponse}
//	@Failure		401	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/v1/me [get]
func (h *StorefrontHandler) Me(c *gin.Context) {
	resp := MeResponse{ID: c.GetString(middleware.UserIDKey)}
	if email := c.GetString(middleware.UserEmailKey); email != "" {
		resp.Email = &email
	}
	h.Success(c, resp)
}

// TopProducts godoc
//
//	@ID				listTopProducts
//	@Summary		Top rated products
//	@Description	Active products by rating, best first. limit is clamped to 1..50.
//	@Tags			storefront
//	@Produce		json
//	@Param			limit	query		int	false	"Number of products"	default(10)
//	@Success		200		{object}	dto.Response{data=catalogapp.TopProductsResponse}
//	@Failure		400		{object}	dto.Response
//	@Failure		500		{object}	dto.Response
//	@Router			/v1/products/top [get]
func (h *StorefrontHandler) TopProducts(c *gin.Context) {
	limit, ok := h.limit(c)
	if !ok {
		return
	}
	resp, err := h.products.TopProducts(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Recommendations godoc
//
//	@ID				listRecommendations
//	@Summary		Personalized recommendations
//	@Description	In-stock products the caller has not interacted with, ranked by their category, brand and tag affinity
//	@Tags			storefront
//	@Produce		json
//	@Param			limit	query		int	false	"Number of products"	default(10)
//	@Success		200		{object}	dto.Response{data=catalogapp.RecommendationsResponse}
//	@Failure		400		{object}	dto.Response
//	@Failure		401		{object}	dto.Response
//	@Failure		500		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/v1/recommendations [get]
func (h *StorefrontHandler) Recommendations(c *gin.Context) {
	limit, ok := h.limit(c)
	if !ok {
		return
	}
	resp, err := h.products.Recommend(c.Request.Context(), c.GetString(middleware.UserIDKey), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// limit parses the limit query parameter; out of range values are clamped
// by the service
func (h *StorefrontHandler) limit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return catalogapp.DefaultListLimit, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		h.BadRequest(c, "limit must be an integer")
		return 0, false
	}
	return limit, true
}
