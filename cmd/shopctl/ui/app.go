package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shopctl/internal/api"
	"shopctl/internal/billing"
	"shopctl/internal/catalog"
	"shopctl/internal/logging"
	"shopctl/internal/orders"
	"shopctl/internal/pages"
	"shopctl/internal/reviews"
	"shopctl/internal/store"
)

// resizeSettleDelay is how long the terminal must stay one size before the
// layout reflows.
const resizeSettleDelay = 150 * time.Millisecond

// toastTTL is how long a toast stays on screen.
const toastTTL = 3 * time.Second

// Services bundles everything the pages talk to.
type Services struct {
	Categories *catalog.Categories
	Products   *catalog.Products
	Pages      *pages.Service
	Orders     *orders.Service
	Reviews    *reviews.Service
	Currencies *billing.Currencies
	Promos     *billing.Promos
	Providers  *billing.Providers
	Store      *store.Store
}

// pageID selects the visible page.
type pageID int

const (
	pageProducts pageID = iota
	pageCategories
	pageOrders
	pageReviews
	pageActivity
)

var pageNames = map[pageID]string{
	pageProducts:   "Products",
	pageCategories: "Categories",
	pageOrders:     "Orders",
	pageReviews:    "Reviews",
	pageActivity:   "Activity",
}

// Messages flowing through the app.
type (
	// refreshMsg reports that a background (debounced) load replaced list
	// state and the visible page should re-render.
	refreshMsg struct{}

	// errMsg carries a failure to the toast line.
	errMsg struct{ err error }

	// toastMsg shows a transient confirmation.
	toastMsg struct{ text string }

	// clearToastMsg removes an expired toast.
	clearToastMsg struct{ id int }

	// sizeMsg is the debounced terminal size.
	sizeMsg struct{ width, height int }

	// eventMsg wraps anything arriving over the background channel, so the
	// channel reader is re-armed exactly once per delivery.
	eventMsg struct{ inner tea.Msg }
)

// page is what every page model implements on top of tea-style updates.
type page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(styles Styles, width int) string
	Title() string
}

// App is the root model: header, page switcher, footer, toast line.
type App struct {
	styles  Styles
	svcs    Services
	pages   map[pageID]page
	current pageID

	events  chan tea.Msg
	resizer *ResizeDebouncer

	width, height int
	toast         string
	toastErr      bool
	toastID       int
	authExpired   bool
}

// NewApp wires the pages.
func NewApp(theme Theme, svcs Services, pageLimit int) *App {
	a := &App{
		styles:  NewStyles(theme),
		svcs:    svcs,
		events:  make(chan tea.Msg, 16),
		resizer: NewResizeDebouncer(resizeSettleDelay),
	}
	a.pages = map[pageID]page{
		pageProducts:   newProductsPage(svcs, a.events, pageLimit),
		pageCategories: newCategoriesPage(svcs),
		pageOrders:     newOrdersPage(svcs, a.events, pageLimit),
		pageReviews:    newReviewsPage(svcs, a.events, pageLimit),
		pageActivity:   newActivityPage(svcs),
	}
	return a
}

// Init loads the first page and starts draining background events.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.pages[a.current].Init(), a.waitForEvent())
}

// waitForEvent forwards one background event (debounced search results,
// async errors) into the bubbletea loop.
func (a *App) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return eventMsg{inner: <-a.events}
	}
}

// Update is the root message dispatcher.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		_, cmd := a.Update(msg.inner)
		return a, tea.Batch(cmd, a.waitForEvent())

	case tea.WindowSizeMsg:
		a.resizer.Resize(msg.Width, msg.Height, func(w, h int) {
			a.events <- sizeMsg{width: w, height: h}
		})
		return a, nil

	case sizeMsg:
		a.width, a.height = msg.width, msg.height
		return a, nil

	case refreshMsg:
		return a, nil

	case errMsg:
		if api.IsAuthError(msg.err) {
			a.authExpired = true
			logging.Get(logging.CategoryUI).Warn("session rejected: %v", msg.err)
			return a, nil
		}
		a.showToast(msg.err.Error(), true)
		return a, a.expireToast()

	case toastMsg:
		a.showToast(msg.text, false)
		return a, a.expireToast()

	case clearToastMsg:
		if msg.id == a.toastID {
			a.toast = ""
		}
		return a, nil

	case tea.KeyMsg:
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}
	}

	return a, a.pages[a.current].Update(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	// Pages with a focused input swallow plain keys; only control keys are
	// global then.
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit, true
	case "q":
		if !a.pageCapturesInput() {
			return tea.Quit, true
		}
	case "1", "2", "3", "4", "5":
		if !a.pageCapturesInput() {
			return a.switchTo(pageID(msg.String()[0] - '1')), true
		}
	case "tab":
		return a.switchTo((a.current + 1) % pageID(len(a.pages))), true
	}
	return nil, false
}

func (a *App) pageCapturesInput() bool {
	if p, ok := a.pages[a.current].(interface{ capturesInput() bool }); ok {
		return p.capturesInput()
	}
	return false
}

func (a *App) switchTo(id pageID) tea.Cmd {
	if _, ok := a.pages[id]; !ok || id == a.current {
		return nil
	}
	a.current = id
	logging.Get(logging.CategoryUI).Debug("switched to %s", pageNames[id])
	return a.pages[id].Init()
}

func (a *App) showToast(text string, isErr bool) {
	a.toast = text
	a.toastErr = isErr
	a.toastID++
}

func (a *App) expireToast() tea.Cmd {
	id := a.toastID
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return clearToastMsg{id: id}
	})
}

// View renders header, current page, toast, footer.
func (a *App) View() string {
	var tabs []string
	for id := pageProducts; id <= pageActivity; id++ {
		name := fmt.Sprintf("%d %s", int(id)+1, pageNames[id])
		if id == a.current {
			tabs = append(tabs, a.styles.Selected.Padding(0, 1).Render(name))
		} else {
			tabs = append(tabs, a.styles.Muted.Padding(0, 1).Render(name))
		}
	}
	header := a.styles.Header.Render("shopctl") + " " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	if a.authExpired {
		body := a.styles.Error.Render("Session expired or rejected.") + "\n" +
			a.styles.Body.Render("Run `shopctl login` and start again.")
		return header + "\n\n" + body + "\n"
	}

	body := a.pages[a.current].View(a.styles, a.width)

	var footer strings.Builder
	if a.toast != "" {
		if a.toastErr {
			footer.WriteString(a.styles.Error.Render(a.toast))
		} else {
			footer.WriteString(a.styles.Success.Render(a.toast))
		}
		footer.WriteString("\n")
	}
	footer.WriteString(a.styles.Footer.Render("tab: next page • /: search • ←/→: pages • q: quit"))

	return header + "\n\n" + body + "\n" + footer.String()
}

// Run starts the TUI.
func Run(ctx context.Context, theme Theme, svcs Services, pageLimit int) error {
	app := NewApp(theme, svcs, pageLimit)
	_, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
