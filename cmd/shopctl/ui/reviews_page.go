package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"shopctl/internal/query"
	"shopctl/internal/types"
)

// reviewsPage is the moderation queue, scoped to pending reviews by
// default.
type reviewsPage struct {
	svcs     Services
	ctrl     *query.Controller[types.Review]
	selected int
	showAll  bool
}

func newReviewsPage(svcs Services, events chan tea.Msg, limit int) *reviewsPage {
	p := &reviewsPage{svcs: svcs}
	p.ctrl = query.New(svcs.Reviews.List, limit,
		query.WithOnChange[types.Review](func() { events <- refreshMsg{} }),
		query.WithOnError[types.Review](func(err error) { events <- errMsg{err: err} }),
	)
	return p
}

func (p *reviewsPage) Title() string { return "Reviews" }

func (p *reviewsPage) Init() tea.Cmd {
	return func() tea.Msg {
		status := "pending"
		if p.showAll {
			status = ""
		}
		if err := p.ctrl.SetFilter(context.Background(), "status", status); err != nil {
			return errMsg{err: err}
		}
		return refreshMsg{}
	}
}

func (p *reviewsPage) Update(msg tea.Msg) tea.Cmd {
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
	case "t":
		p.showAll = !p.showAll
		return p.Init()
	case "y":
		return p.moderate("approved", p.svcs.Reviews.Approve)
	case "n":
		return p.moderate("rejected", p.svcs.Reviews.Reject)
	}
	return nil
}

func (p *reviewsPage) moderate(verb string, fn func(context.Context, int64) error) tea.Cmd {
	items := p.ctrl.Items()
	if p.selected < 0 || p.selected >= len(items) {
		return nil
	}
	review := items[p.selected]
	return func() tea.Msg {
		err := p.ctrl.Mutate(context.Background(), func(ctx context.Context) error {
			return fn(ctx, review.ID)
		})
		if err != nil {
			return errMsg{err: err}
		}
		return toastMsg{text: fmt.Sprintf("%s review by %s", verb, review.Author)}
	}
}

func (p *reviewsPage) reload(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			return errMsg{err: err}
		}
		return refreshMsg{}
	}
}

func (p *reviewsPage) View(styles Styles, width int) string {
	items := p.ctrl.Items()
	if p.selected >= len(items) {
		p.selected = len(items) - 1
	}

	scope := "pending"
	if p.showAll {
		scope = "all"
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Reviews") + "  " + styles.Badge.Render(scope) + "\n\n")

	if len(items) == 0 {
		sb.WriteString(styles.Muted.Render("queue is empty"))
		return sb.String()
	}

	for i, r := range items {
		head := fmt.Sprintf("%s %s (%s)", strings.Repeat("★", r.Rating), r.Author, r.Status)
		if i == p.selected {
			sb.WriteString(styles.Selected.Render(head))
		} else {
			sb.WriteString(styles.Bold.Render(head))
		}
		sb.WriteString("\n")
		text := r.Text
		if len(text) > 120 {
			text = text[:120] + "…"
		}
		sb.WriteString(styles.Muted.Render("  " + text))
		sb.WriteString("\n")
	}

	pg := p.ctrl.Pagination()
	sb.WriteString("\n" + styles.Muted.Render(fmt.Sprintf("page %d/%d • y: approve • n: reject • t: toggle scope", pg.Page, pg.TotalPages)))
	return sb.String()
}
