// internal/domain/product/entity.go
package product

import (
	"github.com/shopspring/decimal"
)

// Product is one purchasable item as the backend describes it. The client
// treats it as read-only.
type Product struct {
	ID       string          `json:"_id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Cost     decimal.Decimal `json:"cost"`
	Rating   int             `json:"rating"`
	Image    string          `json:"image"`
}

// Catalog is an immutable snapshot of the product list with lookups by id.
// A nil *Catalog behaves as an empty one.
type Catalog struct {
	products []Product
	index    map[string]int
}

// NewCatalog snapshots products. Later duplicates of an id are ignored.
func NewCatalog(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}
	for _, p := range products {
		if _, dup := c.index[p.ID]; dup {
			continue
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

// Lookup returns the product with the given id
func (c *Catalog) Lookup(id string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Products returns a copy of the snapshot in backend order
func (c *Catalog) Products() []Product {
	if c == nil {
		return []Product{}
	}
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products in the snapshot
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}
