// internal/interfaces/http/handlers/response.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/infrastructure/backend"
)

// respondError writes err as {"success": false, "message": "..."} with a status derived from it
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), gin.H{
		"success": false,
		"message": messageFor(err),
	})
}

func respondBadRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Invalid request data",
		"details": err.Error(),
	})
}

func statusFor(err error) int {
	var verr *user.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, cart.ErrLoginRequired),
		errors.Is(err, checkout.ErrLoginRequired),
		errors.Is(err, user.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, cart.ErrAlreadyInCart):
		return http.StatusConflict
	case errors.Is(err, cart.ErrNotInCart):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrNegativeQuantity),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrAddressRequired),
		errors.Is(err, checkout.ErrInsufficientBalance):
		return http.StatusBadRequest
	case errors.Is(err, backend.ErrUnreachable):
		return http.StatusBadGateway
	}

	if apiErr, ok := backend.AsAPIError(err); ok {
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func messageFor(err error) string {
	var verr *user.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	if apiErr, ok := backend.AsAPIError(err); ok && apiErr.HasMessage() {
		return apiErr.Message
	}
	return err.Error()
}
