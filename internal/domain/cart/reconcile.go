package cart

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/product"
)

// Reconcile merges cart records with the catalog snapshot into line items,
// preserving record order. Records with qty ≤ 0 produce no line item, and
// records whose product is missing from the catalog are skipped.
func Reconcile(records []CartRecord, catalog *product.Catalog) []LineItem {
	items, _ := ReconcileReport(records, catalog)
	return items
}

// ReconcileReport is Reconcile that also returns the ids of records whose
// product was not found in the catalog.
func ReconcileReport(records []CartRecord, catalog *product.Catalog) ([]LineItem, []string) {
	items := make([]LineItem, 0, len(records))
	var orphans []string

	for _, rec := range records {
		if rec.Qty <= 0 {
			continue
		}
		p, ok := catalog.Lookup(rec.ProductID)
		if !ok {
			orphans = append(orphans, rec.ProductID)
			continue
		}
		items = append(items, LineItem{Product: p, Qty: rec.Qty})
	}

	return items, orphans
}

// TotalValue is the sum of cost × qty over all line items
func TotalValue(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// TotalQuantity is the sum of qty over all line items
func TotalQuantity(items []LineItem) int {
	total := 0
	for _, item := range items {
		total += item.Qty
	}
	return total
}

// Contains reports whether a line item for productID is present
func Contains(items []LineItem, productID string) bool {
	_, ok := Quantity(items, productID)
	return ok
}

// Quantity returns the qty of the line item for productID
func Quantity(items []LineItem, productID string) (int, bool) {
	for _, item := range items {
		if item.ID == productID {
			return item.Qty, true
		}
	}
	return 0, false
}

// Totals computes the cart summary. Shipping is free.
func Totals(items []LineItem) CartTotals {
	totals := CartTotals{
		ItemCount:     len(items),
		TotalQuantity: TotalQuantity(items),
		SubTotal:      TotalValue(items),
		ShippingCost:  decimal.Zero,
	}
	totals.TotalAmount = totals.SubTotal.Add(totals.ShippingCost)
	return totals
}
