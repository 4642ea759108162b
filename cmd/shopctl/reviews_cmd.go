package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shopctl/internal/api"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Moderate customer reviews",
}

var reviewStatusFilter string

var reviewsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reviews (pending by default)",
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

		p := api.ListParams{Limit: a.cfg.UI.PageLimit}
		if reviewStatusFilter != "" {
			p.Filters = map[string]string{"status": reviewStatusFilter}
		}
		resp, err := a.reviews.List(ctx, p)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tRATING\tAUTHOR\tSTATUS\tTEXT")
		for _, r := range resp.Items {
			text := r.Text
			if len(text) > 60 {
				text = text[:60] + "…"
			}
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", r.ID, r.Rating, r.Author, r.Status, text)
		}
		return w.Flush()
	},
}

func reviewModeration(verb string, fn func(*app) func(context.Context, int64) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
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

		if err := fn(a)(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Review %d %s.\n", id, verb)
		return nil
	}
}

var reviewsApproveCmd = &cobra.Command{
	Use:   "approve [id]",
	Short: "Publish a review",
	Args:  cobra.ExactArgs(1),
	RunE:  reviewModeration("approved", func(a *app) func(context.Context, int64) error { return a.reviews.Approve }),
}

var reviewsRejectCmd = &cobra.Command{
	Use:   "reject [id]",
	Short: "Hide a review",
	Args:  cobra.ExactArgs(1),
	RunE:  reviewModeration("rejected", func(a *app) func(context.Context, int64) error { return a.reviews.Reject }),
}

func init() {
	reviewsListCmd.Flags().StringVar(&reviewStatusFilter, "status", "pending", "filter by status (empty for all)")
	reviewsCmd.AddCommand(reviewsListCmd, reviewsApproveCmd, reviewsRejectCmd)
	rootCmd.AddCommand(reviewsCmd)
}
