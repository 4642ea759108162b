package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shopctl/internal/api"
	"shopctl/internal/catalog"
	"shopctl/internal/types"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage the product catalog",
}

var (
	productSearch   string
	productPage     int
	productName     string
	productSKU      string
	productPrice    float64
	productCategory int64
)

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
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

		resp, err := a.products.List(ctx, api.ListParams{
			Page:   productPage,
			Limit:  a.cfg.UI.PageLimit,
			Search: productSearch,
		})
		if err != nil {
			return err
		}
		if productSearch != "" && a.store != nil {
			a.store.RememberSearch("products", productSearch)
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSKU\tPRICE\tSTOCK\tSTATUS")
		for _, p := range resp.Items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%d\t%s\n",
				p.ID, p.Name, p.SKU, p.Price, p.Stock, p.Status)
		}
		w.Flush()
		fmt.Printf("\npage %d/%d, %d total\n",
			resp.Pagination.Page, resp.Pagination.TotalPages, resp.Pagination.Total)
		return nil
	},
}

var productsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a product (as draft)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if productName == "" || productSKU == "" {
			return fmt.Errorf("--name and --sku are required")
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

		d := catalog.NewProductDraft(nil)
		d.SetName(productName)
		d.Value().SKU = productSKU
		d.Value().Price = productPrice
		if productCategory != 0 {
			cat := productCategory
			d.Value().CategoryID = &cat
		}
		if err := d.Save(ctx, a.products); err != nil {
			return draftError(d.FieldErrors(), err)
		}
		if a.store != nil {
			a.store.Journal("products", "create", 0, productName)
		}
		logger.Info("product created", zap.String("name", productName), zap.String("sku", productSKU))
		fmt.Printf("Created %q (slug %s)\n", productName, d.Value().Slug)
		return nil
	},
}

var productsStatusCmd = &cobra.Command{
	Use:   "set-status [id] [draft|published|archived]",
	Short: "Change a product's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		status := types.ProductStatus(args[1])
		switch status {
		case types.ProductDraft, types.ProductPublished, types.ProductArchived:
		default:
			return fmt.Errorf("unknown status %q", args[1])
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

		if err := a.products.SetStatus(ctx, id, status); err != nil {
			return err
		}
		if a.store != nil {
			a.store.Journal("products", string(status), id, "")
		}
		fmt.Printf("Product %d is now %s\n", id, status)
		return nil
	},
}

var productsDuplicateCmd = &cobra.Command{
	Use:   "duplicate [id]",
	Short: "Clone a product server-side",
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

		if err := a.products.Duplicate(ctx, id); err != nil {
			return err
		}
		fmt.Println("Duplicated.")
		return nil
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a product",
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

		if err := a.products.Delete(ctx, id); err != nil {
			return err
		}
		if a.store != nil {
			a.store.Journal("products", "delete", id, "")
		}
		fmt.Println("Deleted.")
		return nil
	},
}

func init() {
	productsListCmd.Flags().StringVar(&productSearch, "search", "", "search term")
	productsListCmd.Flags().IntVar(&productPage, "page", 1, "page number")
	productsAddCmd.Flags().StringVar(&productName, "name", "", "product name")
	productsAddCmd.Flags().StringVar(&productSKU, "sku", "", "stock keeping unit")
	productsAddCmd.Flags().Float64Var(&productPrice, "price", 0, "price")
	productsAddCmd.Flags().Int64Var(&productCategory, "category", 0, "category id")
	productsCmd.AddCommand(productsListCmd, productsAddCmd, productsStatusCmd, productsDuplicateCmd, productsDeleteCmd)
	rootCmd.AddCommand(productsCmd)
}
