package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/user"
)

var (
	addressID   string
	receiptPath string
)

// summaryCmd prints the order details for the cart
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the order details for the current cart",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

// checkoutCmd places the order
var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place the order for the current cart",
	Long: `Place the order for the current cart, shipping to a saved address.

The cart must not be empty and the wallet must cover the total.
With --receipt the order is also written to a PDF receipt (requires wkhtmltopdf).`,
	Args: cobra.NoArgs,
	RunE: runCheckout,
}

// addressesCmd manages the saved shipping addresses
var addressesCmd = &cobra.Command{
	Use:   "addresses",
	Short: "List saved shipping addresses",
	Args:  cobra.NoArgs,
	RunE:  runAddressesList,
}

var addressesAddCmd = &cobra.Command{
	Use:   "add <address>",
	Short: "Save a shipping address",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddressesAdd,
}

var addressesDeleteCmd = &cobra.Command{
	Use:   "delete <address-id>",
	Short: "Delete a saved shipping address",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddressesDelete,
}

func init() {
	checkoutCmd.Flags().StringVarP(&addressID, "address", "a", "", "Shipping address id (see: storefront addresses)")
	checkoutCmd.Flags().StringVar(&receiptPath, "receipt", "", "Write a PDF receipt to this path")

	addressesCmd.AddCommand(addressesAddCmd)
	addressesCmd.AddCommand(addressesDeleteCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	if err := st.front.Load(ctx); err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), st.front.Summary())
	return nil
}

func runCheckout(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	if err := st.front.Load(ctx); err != nil {
		return err
	}

	order, err := st.front.Checkout(ctx, addressID)
	if err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), order.Summary)
	fmt.Fprintf(cmd.OutOrStdout(), "Wallet balance: $%s\n", order.Balance.StringFixed(2))

	if receiptPath == "" {
		return nil
	}

	sess := st.front.Session()
	address := ""
	if list, err := st.addresses.List(ctx, sess); err == nil {
		for _, a := range list {
			if a.ID == order.AddressID {
				address = a.Address
			}
		}
	}

	buf, err := st.receipts.GenerateReceipt(st.receipts.NewReceiptData(order, sess.Username, address))
	if err != nil {
		return err
	}
	if err := os.WriteFile(receiptPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write receipt: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Receipt written to %s\n", receiptPath)
	return nil
}

func runAddressesList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	sess, err := st.users.Current(ctx)
	if err != nil {
		return err
	}
	list, err := st.addresses.List(ctx, sess)
	if err != nil {
		return err
	}
	printAddresses(cmd.OutOrStdout(), list)
	return nil
}

func runAddressesAdd(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	sess, err := st.users.Current(ctx)
	if err != nil {
		return err
	}
	list, err := st.addresses.Add(ctx, sess, args[0])
	if err != nil {
		return err
	}
	printAddresses(cmd.OutOrStdout(), list)
	return nil
}

func runAddressesDelete(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	sess, err := st.users.Current(ctx)
	if err != nil {
		return err
	}
	list, err := st.addresses.Delete(ctx, sess, args[0])
	if err != nil {
		return err
	}
	printAddresses(cmd.OutOrStdout(), list)
	return nil
}

func printSummary(out io.Writer, summary checkout.Summary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Products\t%d\n", summary.ProductCount)
	fmt.Fprintf(w, "Subtotal\t$%s\n", summary.SubTotal.StringFixed(2))
	fmt.Fprintf(w, "Shipping Charges\t$%s\n", summary.ShippingCost.StringFixed(2))
	fmt.Fprintf(w, "Total\t$%s\n", summary.Total.StringFixed(2))
	w.Flush()
}

func printAddresses(out io.Writer, list []user.Address) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No addresses found for this account. Please add one to proceed")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tADDRESS")
	for _, a := range list {
		fmt.Fprintf(w, "%s\t%s\n", a.ID, a.Address)
	}
	w.Flush()
}
