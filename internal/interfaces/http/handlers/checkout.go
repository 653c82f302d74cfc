// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/storefront"
)

// CheckoutHandler handles the order summary and order placement
type CheckoutHandler struct {
	front *storefront.Storefront

	mu        sync.Mutex
	lastOrder *checkout.Order
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(front *storefront.Storefront) *CheckoutHandler {
	return &CheckoutHandler{front: front}
}

// PlaceOrderRequest is the body of POST /api/checkout
type PlaceOrderRequest struct {
	AddressID string `json:"addressId"`
}

// GetSummary handles GET /api/checkout/summary
func (h *CheckoutHandler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Order details retrieved successfully",
		"data":    h.front.Summary(),
	})
}

// PlaceOrder handles POST /api/checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	order, err := h.front.Checkout(c.Request.Context(), req.AddressID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.mu.Lock()
	h.lastOrder = order
	h.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order placed successfully!",
		"data":    order,
	})
}

// LastOrder returns the most recent order placed through this server
func (h *CheckoutHandler) LastOrder() *checkout.Order {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastOrder
}
