// internal/interfaces/http/handlers/receipt.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/pdf"
)

// ReceiptHandler renders the last order as a PDF
type ReceiptHandler struct {
	checkout  *CheckoutHandler
	addresses *user.AddressService
	pdf       *pdf.Service
	logger    *logrus.Logger
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(checkout *CheckoutHandler, addresses *user.AddressService, pdfService *pdf.Service, logger *logrus.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		checkout:  checkout,
		addresses: addresses,
		pdf:       pdfService,
		logger:    logger,
	}
}

// GetReceipt handles GET /api/checkout/receipt
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	sess, _ := middleware.GetSessionFromContext(c)

	order := h.checkout.LastOrder()
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "No order has been placed yet",
		})
		return
	}

	// The address text is printed when it is still on file
	address := ""
	if list, err := h.addresses.List(c.Request.Context(), sess); err == nil {
		for _, a := range list {
			if a.ID == order.AddressID {
				address = a.Address
			}
		}
	}

	data := h.pdf.NewReceiptData(order, sess.Username, address)
	if c.Query("format") == "html" {
		html, err := h.pdf.RenderHTML(data)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return
	}

	buf, err := h.pdf.GenerateReceipt(data)
	if err != nil {
		h.logger.WithError(err).Error("receipt generation failed")
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
