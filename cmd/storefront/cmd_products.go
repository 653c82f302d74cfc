package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/product"
)

// productsCmd lists the catalog
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the product catalog",
	Args:  cobra.NoArgs,
	RunE:  runProducts,
}

// searchCmd searches the catalog
var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search products by name or category",
	Long: `Search products by name or category.

No match prints an empty list. If the backend's search fails with a server
error the whole catalog is shown instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runProducts(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	if err := st.front.Load(ctx); err != nil {
		return err
	}
	snap := st.front.Snapshot()
	printProducts(cmd.OutOrStdout(), snap.Products, snap.Items)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	if err := st.front.Load(ctx); err != nil {
		return err
	}
	// A failed search has already been reported; the list shows what the page would
	_ = st.front.Search(ctx, strings.Join(args, " "))

	snap := st.front.Snapshot()
	printProducts(cmd.OutOrStdout(), snap.Products, snap.Items)
	return nil
}

func printProducts(out io.Writer, products []product.Product, items []cart.LineItem) {
	if len(products) == 0 {
		fmt.Fprintln(out, "No products found")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tCOST\tRATING\tIN CART")
	for _, p := range products {
		inCart := ""
		if qty, ok := cart.Quantity(items, p.ID); ok {
			inCart = fmt.Sprintf("%d", qty)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t$%s\t%d\t%s\n", p.ID, p.Name, p.Category, p.Cost.StringFixed(2), p.Rating, inCart)
	}
	w.Flush()
}
