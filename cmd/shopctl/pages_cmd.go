package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"shopctl/internal/pages"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Manage site pages and their sections",
}

var pagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the page tree",
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

		flat, err := a.pages.Flat(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSLUG")
		for _, f := range flat {
			fmt.Fprintf(w, "%d\t%s\t%s\n", f.ID, strings.Repeat("  ", f.Depth)+f.Name, f.Slug)
		}
		return w.Flush()
	},
}

var pagesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Preview a page's sections in the terminal",
	Long: `Loads the page with its full section array and renders a terminal
preview. Markdown sections render formatted; other sections show a summary
line. Hidden sections are marked.`,
	Args: cobra.ExactArgs(1),
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

		page, err := a.pages.Get(ctx, id)
		if err != nil {
			return err
		}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return err
		}

		fmt.Printf("# %s (/%s) [%s]\n\n", page.Name, page.Slug, page.Status)
		for i, s := range page.Sections {
			marker := ""
			if s.Hidden {
				marker = " [hidden]"
			}
			fmt.Printf("-- %d. %s%s --\n", i+1, s.Type, marker)
			switch body := s.Body.(type) {
			case pages.MarkdownBody:
				out, err := renderer.Render(body.Content)
				if err != nil {
					return err
				}
				fmt.Print(out)
			case pages.TextBody:
				fmt.Println(body.Content)
			case pages.HeroBody:
				fmt.Printf("%s\n%s\n", body.Title, body.Subtitle)
			case pages.FAQBody:
				for _, item := range body.Items {
					fmt.Printf("Q: %s\nA: %s\n", item.Question, item.Answer)
				}
			default:
				fmt.Printf("(%s section)\n", s.Type)
			}
			fmt.Println()
		}
		return nil
	},
}

var pagesPublishCmd = &cobra.Command{
	Use:   "publish [id]",
	Short: "Publish a page",
	Args:  cobra.ExactArgs(1),
	RunE:  pageToggle((*pages.Service).Publish, "Published."),
}

var pagesUnpublishCmd = &cobra.Command{
	Use:   "unpublish [id]",
	Short: "Take a page offline",
	Args:  cobra.ExactArgs(1),
	RunE:  pageToggle((*pages.Service).Unpublish, "Unpublished."),
}

var pagesDuplicateCmd = &cobra.Command{
	Use:   "duplicate [id]",
	Short: "Clone a page server-side",
	Args:  cobra.ExactArgs(1),
	RunE:  pageToggle((*pages.Service).Duplicate, "Duplicated."),
}

// pageToggle wraps the one-id page operations that differ only in endpoint.
func pageToggle(fn func(*pages.Service, context.Context, int64) error, done string) func(*cobra.Command, []string) error {
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

		if err := fn(a.pages, ctx, id); err != nil {
			return err
		}
		if a.store != nil {
			a.store.Journal("pages", strings.ToLower(strings.TrimSuffix(done, ".")), id, "")
		}
		fmt.Println(done)
		return nil
	}
}

func init() {
	pagesCmd.AddCommand(pagesListCmd, pagesShowCmd, pagesPublishCmd, pagesUnpublishCmd, pagesDuplicateCmd)
	rootCmd.AddCommand(pagesCmd)
}
