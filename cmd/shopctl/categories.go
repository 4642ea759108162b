package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shopctl/internal/catalog"
	"shopctl/internal/types"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage the category tree",
}

var categoriesTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the category tree",
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

		flat, err := a.categories.Flat(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSLUG\tACTIVE\tPRODUCTS")
		for _, f := range flat {
			name := strings.Repeat("  ", f.Depth) + f.Name
			fmt.Fprintf(w, "%d\t%s\t%s\t%v\t%d\n", f.ID, name, f.Slug, f.IsActive, f.ProductCount)
		}
		return w.Flush()
	},
}

var (
	categoryName   string
	categoryParent int64
)

var categoriesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a category",
	Long: `Creates a category. The slug is derived from the name; pass names in
any language, transliteration is automatic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if categoryName == "" {
			return fmt.Errorf("--name is required")
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

		d := catalog.NewCategoryDraft(nil)
		d.SetName(categoryName)
		if categoryParent != 0 {
			parent := categoryParent
			d.Value().ParentID = &parent
		}
		if err := d.Save(ctx, a.categories); err != nil {
			return draftError(d.FieldErrors(), err)
		}
		logger.Info("category created", zap.String("name", categoryName))
		fmt.Printf("Created %q (slug %s)\n", categoryName, d.Value().Slug)
		return nil
	},
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an empty category",
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

		// Load the tree first so the child guard has a ChildCount to check.
		all, err := a.categories.All(ctx)
		if err != nil {
			return err
		}
		var target *types.Category
		for i := range all {
			if all[i].ID == id {
				target = &all[i]
				break
			}
		}
		if target == nil {
			return fmt.Errorf("category %d not found", id)
		}
		if err := a.categories.Delete(ctx, *target); err != nil {
			return err
		}
		if a.store != nil {
			a.store.Journal("categories", "delete", id, target.Name)
		}
		fmt.Printf("Deleted %q\n", target.Name)
		return nil
	},
}

var categoriesMoveCmd = &cobra.Command{
	Use:   "move [id] [position]",
	Short: "Move a category within its siblings",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		pos, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[1])
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

		var parent *int64
		if categoryParent != 0 {
			p := categoryParent
			parent = &p
		}
		if err := a.categories.Move(ctx, id, parent, pos); err != nil {
			return err
		}
		fmt.Println("Moved.")
		return nil
	},
}

// draftError renders field errors under the submit error so the operator
// sees which inputs to fix.
func draftError(fields map[string]string, err error) error {
	if len(fields) == 0 {
		return err
	}
	var sb strings.Builder
	sb.WriteString(err.Error())
	for field, msg := range fields {
		sb.WriteString(fmt.Sprintf("\n  %s: %s", field, msg))
	}
	return fmt.Errorf("%s", sb.String())
}

func init() {
	categoriesAddCmd.Flags().StringVar(&categoryName, "name", "", "category name")
	categoriesAddCmd.Flags().Int64Var(&categoryParent, "parent", 0, "parent category id")
	categoriesMoveCmd.Flags().Int64Var(&categoryParent, "parent", 0, "new parent category id")
	categoriesCmd.AddCommand(categoriesTreeCmd, categoriesAddCmd, categoriesDeleteCmd, categoriesMoveCmd)
	rootCmd.AddCommand(categoriesCmd)
}
