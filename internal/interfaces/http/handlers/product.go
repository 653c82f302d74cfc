// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/storefront"
)

// ProductHandler serves the product grid and search box
type ProductHandler struct {
	front *storefront.Storefront
}

// NewProductHandler creates a new product handler
func NewProductHandler(front *storefront.Storefront) *ProductHandler {
	return &ProductHandler{front: front}
}

// SearchRequest is the body of POST /api/search
type SearchRequest struct {
	Text string `json:"text"`
	// Immediate skips the debounce window
	Immediate bool `json:"immediate"`
}

// GetProducts handles GET /api/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	snap := h.front.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data": gin.H{
			"products":    snap.Products,
			"query":       snap.Query,
			"catalogSize": snap.CatalogSize,
			"pending":     h.front.SearchPending(),
		},
	})
}

// Search handles POST /api/search
func (h *ProductHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if !req.Immediate {
		h.front.SearchInput(c.Request.Context(), req.Text)
		c.JSON(http.StatusAccepted, gin.H{
			"message": "Search scheduled",
			"data":    gin.H{"pending": true},
		})
		return
	}

	if err := h.front.Search(c.Request.Context(), req.Text); err != nil {
		respondError(c, err)
		return
	}

	snap := h.front.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"message": "Search completed",
		"data": gin.H{
			"products": snap.Products,
			"query":    snap.Query,
		},
	})
}

// Reload handles POST /api/reload: the page load again (catalog and cart)
func (h *ProductHandler) Reload(c *gin.Context) {
	if err := h.front.Load(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	snap := h.front.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"message": "Storefront reloaded",
		"data":    snap,
	})
}
