package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shopctl/internal/api"
	"shopctl/internal/orders"
	"shopctl/internal/types"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Inspect and advance orders",
}

var (
	orderStatusFilter string
	orderPage         int
)

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireAuth(); err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		p := api.ListParams{Page: orderPage, Limit: a.cfg.UI.PageLimit}
		if orderStatusFilter != "" {
			p.Filters = map[string]string{"status": orderStatusFilter}
		}
		resp, err := a.orders.List(ctx, p)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NUMBER\tCUSTOMER\tTOTAL\tSTATUS\tPLACED")
		for _, o := range resp.Items {
			fmt.Fprintf(w, "%s\t%s\t%.2f %s\t%s\t%s\n",
				o.Number, o.CustomerName, o.Total, o.Currency, o.Status,
				o.CreatedAt.Format("2006-01-02 15:04"))
		}
		w.Flush()
		fmt.Printf("\npage %d/%d, %d total\n",
			resp.Pagination.Page, resp.Pagination.TotalPages, resp.Pagination.Total)
		return nil
	},
}

var ordersShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one order with its line items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireAuth(); err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		o, err := a.orders.Get(ctx, id)
		if err != nil {
			return err
		}

		fmt.Printf("Order %s, status %s\n", o.Number, o.Status)
		fmt.Printf("%s <%s>", o.CustomerName, o.CustomerEmail)
		if o.CustomerPhone != "" {
			fmt.Printf(" %s", o.CustomerPhone)
		}
		fmt.Println()
		if o.Comment != "" {
			fmt.Printf("Comment: %s\n", o.Comment)
		}
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "QTY\tITEM\tUNIT\tLINE")
		for _, item := range o.Items {
			fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\n",
				item.Quantity, item.Name, item.UnitPrice, float64(item.Quantity)*item.UnitPrice)
		}
		w.Flush()
		fmt.Printf("\nSubtotal %.2f + shipping %.2f = %.2f %s\n",
			o.Subtotal, o.Shipping, o.Total, o.Currency)

		if next := orders.NextStatuses(o.Status); len(next) > 0 {
			fmt.Printf("Next: %v\n", next)
		}
		return nil
	},
}

var ordersStatusCmd = &cobra.Command{
	Use:   "set-status [id] [status]",
	Short: "Move an order through its flow",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireAuth(); err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		o, err := a.orders.Get(ctx, id)
		if err != nil {
			return err
		}
		to := types.OrderStatus(args[1])
		if err := a.orders.SetStatus(ctx, o, to); err != nil {
			return err
		}
		if a.store != nil {
			a.store.Journal("orders", string(to), id, o.Number)
		}
		fmt.Printf("%s: %s -> %s\n", o.Number, o.Status, to)
		return nil
	},
}

func init() {
	ordersListCmd.Flags().StringVar(&orderStatusFilter, "status", "", "filter by status")
	ordersListCmd.Flags().IntVar(&orderPage, "page", 1, "page number")
	ordersCmd.AddCommand(ordersListCmd, ordersShowCmd, ordersStatusCmd)
	rootCmd.AddCommand(ordersCmd)
}
