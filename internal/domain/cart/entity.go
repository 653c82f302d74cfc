// internal/domain/cart/entity.go
package cart

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/product"
)

// CartRecord is the backend's authoritative (productId, qty) pair for one cart line
type CartRecord struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// LineItem is a cart record merged with its product's attributes. It is
// derived client side and rebuilt on every change, never patched.
type LineItem struct {
	product.Product
	Qty int `json:"qty"`
}

// Subtotal is cost × qty for this line
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Cost.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// CartTotals represents calculated cart totals
type CartTotals struct {
	ItemCount     int             `json:"item_count"`     // Number of distinct lines
	TotalQuantity int             `json:"total_quantity"` // Sum of all quantities
	SubTotal      decimal.Decimal `json:"sub_total"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// upsertRequest is the body of POST /cart
type upsertRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}
