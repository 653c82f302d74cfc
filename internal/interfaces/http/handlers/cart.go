// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/storefront"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	front *storefront.Storefront
}

// NewCartHandler creates a new cart handler
func NewCartHandler(front *storefront.Storefront) *CartHandler {
	return &CartHandler{front: front}
}

// SetQuantityRequest is the body of POST /api/cart/:id
type SetQuantityRequest struct {
	Qty *int `json:"qty" binding:"required"`
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	h.respondCart(c, http.StatusOK, "Cart retrieved successfully", h.front.Items())
}

// SetQuantity handles POST /api/cart/:id
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	items, err := h.front.SetQuantity(c.Request.Context(), c.Param("id"), *req.Qty)
	h.finish(c, items, err, "Cart updated successfully")
}

// AddToCart handles POST /api/cart/:id/add
func (h *CartHandler) AddToCart(c *gin.Context) {
	h.mutate(c, h.front.AddToCart, "Item added to cart successfully")
}

// Increment handles POST /api/cart/:id/increment
func (h *CartHandler) Increment(c *gin.Context) {
	h.mutate(c, h.front.Increment, "Cart updated successfully")
}

// Decrement handles POST /api/cart/:id/decrement
func (h *CartHandler) Decrement(c *gin.Context) {
	h.mutate(c, h.front.Decrement, "Cart updated successfully")
}

func (h *CartHandler) mutate(c *gin.Context, fn func(ctx context.Context, productID string) ([]cart.LineItem, error), message string) {
	items, err := fn(c.Request.Context(), c.Param("id"))
	h.finish(c, items, err, message)
}

func (h *CartHandler) finish(c *gin.Context, items []cart.LineItem, err error, message string) {
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondCart(c, http.StatusOK, message, items)
}

func (h *CartHandler) respondCart(c *gin.Context, status int, message string, items []cart.LineItem) {
	c.JSON(status, gin.H{
		"message": message,
		"data": gin.H{
			"items":  items,
			"totals": cart.Totals(items),
		},
	})
}
