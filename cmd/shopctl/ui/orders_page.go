package ui

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"shopctl/internal/query"
	"shopctl/internal/types"
)

// statusFilterCycle is the filter rotation for the `f` key; "" means all.
var statusFilterCycle = []string{"", "new", "paid", "shipped", "delivered", "cancelled"}

// ordersPage is the order desk: list with a status filter and forward
// status moves on the selected order.
type ordersPage struct {
	svcs      Services
	ctrl      *query.Controller[types.Order]
	selected  int
	filterIdx int
}

func newOrdersPage(svcs Services, events chan tea.Msg, limit int) *ordersPage {
	p := &ordersPage{svcs: svcs}
	p.ctrl = query.New(svcs.Orders.List, limit,
		query.WithOnChange[types.Order](func() { events <- refreshMsg{} }),
		query.WithOnError[types.Order](func(err error) { events <- errMsg{err: err} }),
	)
	return p
}

func (p *ordersPage) Title() string { return "Orders" }

func (p *ordersPage) Init() tea.Cmd {
	return func() tea.Msg {
		if err := p.ctrl.Load(context.Background()); err != nil {
			return errMsg{err: err}
		}
		return refreshMsg{}
	}
}

func (p *ordersPage) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
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
	case "f":
		p.filterIdx = (p.filterIdx + 1) % len(statusFilterCycle)
		status := statusFilterCycle[p.filterIdx]
		return func() tea.Msg {
			if err := p.ctrl.SetFilter(context.Background(), "status", status); err != nil {
				return errMsg{err: err}
			}
			return refreshMsg{}
		}
	case "enter":
		return p.advanceSelected()
	}
	return nil
}

// advanceSelected moves the selected order one step forward in its flow
// (new->paid->shipped->delivered) and reloads.
func (p *ordersPage) advanceSelected() tea.Cmd {
	items := p.ctrl.Items()
	if p.selected < 0 || p.selected >= len(items) {
		return nil
	}
	order := items[p.selected]
	next := nextForward(order.Status)
	if next == "" {
		return func() tea.Msg {
			return errMsg{err: fmt.Errorf("order %s is %s, nowhere to go", order.Number, order.Status)}
		}
	}
	return func() tea.Msg {
		err := p.ctrl.Mutate(context.Background(), func(ctx context.Context) error {
			return p.svcs.Orders.SetStatus(ctx, order, next)
		})
		if err != nil {
			return errMsg{err: err}
		}
		if p.svcs.Store != nil {
			p.svcs.Store.Journal("orders", string(next), order.ID, order.Number)
		}
		return toastMsg{text: fmt.Sprintf("%s -> %s", order.Number, next)}
	}
}

// nextForward picks the non-cancel continuation of the flow.
func nextForward(s types.OrderStatus) types.OrderStatus {
	switch s {
	case types.OrderNew:
		return types.OrderPaid
	case types.OrderPaid:
		return types.OrderShipped
	case types.OrderShipped:
		return types.OrderDelivered
	default:
		return ""
	}
}

func (p *ordersPage) reload(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			return errMsg{err: err}
		}
		return refreshMsg{}
	}
}

func (p *ordersPage) View(styles Styles, width int) string {
	items := p.ctrl.Items()
	if p.selected >= len(items) {
		p.selected = len(items) - 1
	}

	table := NewTable("Number", "Customer", "Total", "Status", "Placed")
	table.Selected = p.selected
	for _, o := range items {
		table.AddRow(
			o.Number,
			o.CustomerName,
			fmt.Sprintf("%.2f %s", o.Total, o.Currency),
			string(o.Status),
			o.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	pg := p.ctrl.Pagination()
	filter := statusFilterCycle[p.filterIdx]
	if filter == "" {
		filter = "all"
	}

	return styles.Title.Render("Orders") + "  " + styles.Badge.Render(filter) + "\n\n" +
		table.View(styles) + "\n" +
		styles.Muted.Render(fmt.Sprintf("page %d/%d • %s total", pg.Page, pg.TotalPages, strconv.Itoa(pg.Total))) + "\n" +
		styles.Muted.Render("enter: advance status • f: cycle filter")
}
