// internal/interfaces/http/handlers/user_address.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// AddressHandler handles the saved shipping addresses
type AddressHandler struct {
	addresses *user.AddressService
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(addresses *user.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// CreateAddressRequest is the body of POST /api/addresses
type CreateAddressRequest struct {
	Address string `json:"address"`
}

// GetAddresses handles GET /api/addresses
func (h *AddressHandler) GetAddresses(c *gin.Context) {
	sess, _ := middleware.GetSessionFromContext(c)

	list, err := h.addresses.List(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Addresses retrieved successfully",
		"data":    list,
	})
}

// CreateAddress handles POST /api/addresses
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	sess, _ := middleware.GetSessionFromContext(c)

	var req CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	list, err := h.addresses.Add(c.Request.Context(), sess, req.Address)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Address created successfully",
		"data":    list,
	})
}

// DeleteAddress handles DELETE /api/addresses/:id
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	sess, _ := middleware.GetSessionFromContext(c)

	list, err := h.addresses.Delete(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Address deleted successfully",
		"data":    list,
	})
}
