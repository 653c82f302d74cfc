package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/your-org/storefront/internal/domain/cart"
)

// cartCmd shows the cart
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the cart with totals",
	Args:  cobra.NoArgs,
	RunE:  runCart,
}

// addCmd adds a product to the cart
var addCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add one unit of a product that is not in the cart yet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMutation(cmd, func(ctx context.Context) ([]cart.LineItem, error) {
			return st.front.AddToCart(ctx, args[0])
		})
	},
}

// incCmd raises a line's quantity
var incCmd = &cobra.Command{
	Use:   "inc <product-id>",
	Short: "Increase a cart line's quantity by one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMutation(cmd, func(ctx context.Context) ([]cart.LineItem, error) {
			return st.front.Increment(ctx, args[0])
		})
	},
}

// decCmd lowers a line's quantity
var decCmd = &cobra.Command{
	Use:   "dec <product-id>",
	Short: "Decrease a cart line's quantity by one, removing it at zero",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMutation(cmd, func(ctx context.Context) ([]cart.LineItem, error) {
			return st.front.Decrement(ctx, args[0])
		})
	},
}

// setCmd sets a line's quantity
var setCmd = &cobra.Command{
	Use:   "set <product-id> <qty>",
	Short: "Set a cart line's quantity (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		return runMutation(cmd, func(ctx context.Context) ([]cart.LineItem, error) {
			return st.front.SetQuantity(ctx, args[0], qty)
		})
	},
}

func runCart(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	if err := st.front.Load(ctx); err != nil {
		return err
	}
	printCart(cmd.OutOrStdout(), st.front.Items())
	return nil
}

func runMutation(cmd *cobra.Command, fn func(ctx context.Context) ([]cart.LineItem, error)) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	if err := st.front.Load(ctx); err != nil {
		return err
	}
	items, err := fn(ctx)
	if err != nil {
		return err
	}
	printCart(cmd.OutOrStdout(), items)
	return nil
}

func printCart(out io.Writer, items []cart.LineItem) {
	if len(items) == 0 {
		fmt.Fprintln(out, "Cart is empty. Add more items to the cart to checkout")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOST\tQTY\tSUBTOTAL")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t$%s\t%d\t$%s\n", item.ID, item.Name, item.Cost.StringFixed(2), item.Qty, item.Subtotal().StringFixed(2))
	}
	w.Flush()

	totals := cart.Totals(items)
	fmt.Fprintf(out, "Order total: $%s (%d items)\n", totals.TotalAmount.StringFixed(2), totals.TotalQuantity)
}
