package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shopctl/internal/api"
	"shopctl/internal/billing"
	"shopctl/internal/types"
)

var billingCmd = &cobra.Command{
	Use:   "billing",
	Short: "Currencies, promo codes, payment providers",
}

var currenciesCmd = &cobra.Command{
	Use:   "currencies",
	Short: "List configured currencies",
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

		items, err := a.currencies.List(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCODE\tSYMBOL\tRATE\tDEFAULT\tACTIVE")
		for _, c := range items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%.4f\t%v\t%v\n",
				c.ID, c.Code, c.Symbol, c.Rate, c.IsDefault, c.IsActive)
		}
		return w.Flush()
	},
}

var currencyDefaultCmd = &cobra.Command{
	Use:   "set-default-currency [id]",
	Short: "Make a currency the default",
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

		if err := a.currencies.SetDefault(ctx, id); err != nil {
			return err
		}
		fmt.Println("Default currency updated.")
		return nil
	},
}

var (
	promoCode  string
	promoKind  string
	promoValue float64
)

var promosCmd = &cobra.Command{
	Use:   "promos",
	Short: "List promo codes",
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

		resp, err := a.promos.List(ctx, api.ListParams{Limit: 100})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCODE\tKIND\tVALUE\tUSED\tACTIVE")
		for _, p := range resp.Items {
			used := strconv.Itoa(p.UsedCount)
			if p.UsageLimit != nil {
				used += "/" + strconv.Itoa(*p.UsageLimit)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\t%v\n",
				p.ID, p.Code, p.Kind, p.Value, used, p.IsActive)
		}
		return w.Flush()
	},
}

var promoAddCmd = &cobra.Command{
	Use:   "add-promo",
	Short: "Create a promo code",
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

		d := billing.NewPromoDraft(nil)
		d.Value().Code = promoCode
		d.Value().Kind = types.DiscountKind(promoKind)
		d.Value().Value = promoValue
		if err := d.Save(ctx, a.promos); err != nil {
			return draftError(d.FieldErrors(), err)
		}
		fmt.Printf("Created promo %s\n", d.Value().Code)
		return nil
	},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List payment providers",
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

		items, err := a.providers.List(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTYPE\tNAME\tENABLED\tCONFIG")
		for _, p := range items {
			keys := make([]string, 0, len(p.Config))
			for k := range p.Config {
				keys = append(keys, k)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%v\t%s\n",
				p.ID, p.Type, p.Name, p.Enabled, strings.Join(keys, ","))
		}
		w.Flush()
		fmt.Printf("\nknown types: %s\n", strings.Join(billing.ProviderTypes(), ", "))
		return nil
	},
}

func init() {
	promoAddCmd.Flags().StringVar(&promoCode, "code", "", "promo code (stored upper-case)")
	promoAddCmd.Flags().StringVar(&promoKind, "kind", "percent", "percent or fixed")
	promoAddCmd.Flags().Float64Var(&promoValue, "value", 0, "discount value")
	billingCmd.AddCommand(currenciesCmd, currencyDefaultCmd, promosCmd, promoAddCmd, providersCmd)
	rootCmd.AddCommand(billingCmd)
}
