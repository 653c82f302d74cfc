package cart

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/product"
)

func fixtureCatalog() *product.Catalog {
	return product.NewCatalog([]product.Product{
		{ID: "A", Name: "iPhone XR", Category: "Phones", Cost: decimal.NewFromInt(100), Rating: 4, Image: "a.jpg"},
		{ID: "B", Name: "Basketball", Category: "Sports", Cost: decimal.NewFromInt(50), Rating: 5, Image: "b.jpg"},
		{ID: "C", Name: "Tan Leatherette Weekender Duffle", Category: "Fashion", Cost: decimal.RequireFromString("150.25"), Rating: 4},
	})
}

func TestReconcileKeepsOrderAndAttributes(t *testing.T) {
	catalog := fixtureCatalog()
	records := []CartRecord{{ProductID: "C", Qty: 1}, {ProductID: "A", Qty: 2}, {ProductID: "B", Qty: 7}}

	items := Reconcile(records, catalog)

	require.Len(t, items, len(records))
	for i, rec := range records {
		want, _ := catalog.Lookup(rec.ProductID)
		assert.Equal(t, want, items[i].Product)
		assert.Equal(t, rec.Qty, items[i].Qty)
	}
}

func TestReconcileEmptyInputs(t *testing.T) {
	for name, records := range map[string][]CartRecord{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			items := Reconcile(records, fixtureCatalog())
			assert.NotNil(t, items)
			assert.Empty(t, items)

			assert.Empty(t, Reconcile(records, nil))
		})
	}
}

func TestReconcileSkipsOrphansAndZeroQuantities(t *testing.T) {
	records := []CartRecord{{ProductID: "A", Qty: 1}, {ProductID: "ghost", Qty: 3}, {ProductID: "B", Qty: 0}}

	items, orphans := ReconcileReport(records, fixtureCatalog())

	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].ID)
	assert.Equal(t, []string{"ghost"}, orphans)
}

func TestTotalsOfEmptyCart(t *testing.T) {
	assert.True(t, TotalValue(nil).IsZero())
	assert.Zero(t, TotalQuantity(nil))
	assert.True(t, TotalValue([]LineItem{}).IsZero())
	assert.Zero(t, TotalQuantity([]LineItem{}))
}

func TestScenarioTwoProducts(t *testing.T) {
	catalog := product.NewCatalog([]product.Product{
		{ID: "A", Cost: decimal.NewFromInt(100)},
		{ID: "B", Cost: decimal.NewFromInt(50)},
	})
	items := Reconcile([]CartRecord{{ProductID: "A", Qty: 2}, {ProductID: "B", Qty: 1}}, catalog)

	assert.True(t, TotalValue(items).Equal(decimal.NewFromInt(250)), "got %s", TotalValue(items))
	assert.Equal(t, 3, TotalQuantity(items))

	totals := Totals(items)
	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, 3, totals.TotalQuantity)
	assert.True(t, totals.ShippingCost.IsZero())
	assert.True(t, totals.TotalAmount.Equal(decimal.NewFromInt(250)))
}

func TestTotalValueIsOrderIndependent(t *testing.T) {
	items := Reconcile([]CartRecord{
		{ProductID: "A", Qty: 3},
		{ProductID: "B", Qty: 11},
		{ProductID: "C", Qty: 7},
	}, fixtureCatalog())
	want := TotalValue(items)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]LineItem(nil), items...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.True(t, TotalValue(shuffled).Equal(want))
	}
}

func TestContains(t *testing.T) {
	items := Reconcile([]CartRecord{{ProductID: "A", Qty: 1}}, fixtureCatalog())

	assert.True(t, Contains(items, "A"))
	assert.False(t, Contains(items, "B"))
	assert.False(t, Contains(nil, "A"))
	assert.False(t, Contains(items, ""))

	qty, ok := Quantity(items, "A")
	assert.True(t, ok)
	assert.Equal(t, 1, qty)
}
