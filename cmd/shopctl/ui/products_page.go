package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"shopctl/internal/query"
	"shopctl/internal/types"
)

// productsPage is the product list: debounced search, paging, row actions.
type productsPage struct {
	svcs     Services
	ctrl     *query.Controller[types.Product]
	events   chan tea.Msg
	search   textinput.Model
	selected int
}

func newProductsPage(svcs Services, events chan tea.Msg, limit int) *productsPage {
	p := &productsPage{svcs: svcs, events: events}

	p.search = textinput.New()
	p.search.Placeholder = "search products"
	p.search.CharLimit = 80

	p.ctrl = query.New(svcs.Products.List, limit,
		query.WithOnChange[types.Product](func() { events <- refreshMsg{} }),
		query.WithOnError[types.Product](func(err error) { events <- errMsg{err: err} }),
	)
	return p
}

func (p *productsPage) Title() string { return "Products" }

func (p *productsPage) capturesInput() bool { return p.search.Focused() }

func (p *productsPage) Init() tea.Cmd {
	return func() tea.Msg {
		if err := p.ctrl.Load(context.Background()); err != nil {
			return errMsg{err: err}
		}
		return refreshMsg{}
	}
}

func (p *productsPage) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if p.search.Focused() {
		switch key.String() {
		case "esc":
			p.search.Blur()
			return nil
		case "enter":
			p.search.Blur()
			if q := p.search.Value(); q != "" && p.svcs.Store != nil {
				p.svcs.Store.RememberSearch("products", q)
			}
			return nil
		}
		var cmd tea.Cmd
		p.search, cmd = p.search.Update(msg)
		p.ctrl.SetSearch(context.Background(), p.search.Value())
		return cmd
	}

	switch key.String() {
	case "/":
		p.search.Focus()
		return textinput.Blink
	case "up", "k":
		if p.selected > 0 {
			p.selected--
		}
	case "down", "j":
		if p.selected < len(p.ctrl.Items())-1 {
			p.selected++
		}
	case "left", "h":
		return p.reload(p.ctrl.PrevPage)
	case "right", "l":
		return p.reload(p.ctrl.NextPage)
	case "s":
		return p.withSelected(func(prod types.Product) tea.Cmd {
			next := types.ProductPublished
			if prod.Status == types.ProductPublished {
				next = types.ProductDraft
			}
			return p.mutate(fmt.Sprintf("%s -> %s", prod.Name, next), func(ctx context.Context) error {
				return p.svcs.Products.SetStatus(ctx, prod.ID, next)
			})
		})
	case "D":
		return p.withSelected(func(prod types.Product) tea.Cmd {
			return p.mutate("duplicated "+prod.Name, func(ctx context.Context) error {
				return p.svcs.Products.Duplicate(ctx, prod.ID)
			})
		})
	case "P":
		return p.withSelected(func(prod types.Product) tea.Cmd {
			if p.svcs.Store != nil {
				p.svcs.Store.Pin("products", prod.ID, prod.Name)
			}
			return func() tea.Msg { return toastMsg{text: "pinned " + prod.Name} }
		})
	}
	return nil
}

func (p *productsPage) withSelected(fn func(types.Product) tea.Cmd) tea.Cmd {
	items := p.ctrl.Items()
	if p.selected < 0 || p.selected >= len(items) {
		return nil
	}
	return fn(items[p.selected])
}

// mutate runs the mutation and the follow-up reload off the UI goroutine.
func (p *productsPage) mutate(toast string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := p.ctrl.Mutate(context.Background(), fn); err != nil {
			return errMsg{err: err}
		}
		if p.svcs.Store != nil {
			p.svcs.Store.Journal("products", "mutate", 0, toast)
		}
		return toastMsg{text: toast}
	}
}

func (p *productsPage) reload(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			return errMsg{err: err}
		}
		return refreshMsg{}
	}
}

func (p *productsPage) View(styles Styles, width int) string {
	items := p.ctrl.Items()
	if p.selected >= len(items) {
		p.selected = len(items) - 1
	}

	table := NewTable("ID", "Name", "SKU", "Price", "Stock", "Status")
	table.Selected = p.selected
	for _, prod := range items {
		table.AddRow(
			strconv.FormatInt(prod.ID, 10),
			prod.Name,
			prod.SKU,
			fmt.Sprintf("%.2f", prod.Price),
			strconv.Itoa(prod.Stock),
			string(prod.Status),
		)
	}

	pg := p.ctrl.Pagination()
	status := styles.Muted.Render(fmt.Sprintf("page %d/%d • %d total", pg.Page, pg.TotalPages, pg.Total))

	return styles.Title.Render("Products") + "  " + p.search.View() + "\n\n" +
		table.View(styles) + "\n" + status + "\n" +
		styles.Muted.Render("s: toggle status • D: duplicate • P: pin")
}
