package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"shopctl/internal/tree"
	"shopctl/internal/types"
)

// categoriesPage renders the category tree in server order with depth
// indentation. It reloads the whole tree after every mutation.
type categoriesPage struct {
	svcs     Services
	flat     []tree.Flat
	selected int
}

func newCategoriesPage(svcs Services) *categoriesPage {
	return &categoriesPage{svcs: svcs}
}

func (p *categoriesPage) Title() string { return "Categories" }

func (p *categoriesPage) Init() tea.Cmd {
	return p.load()
}

// treeLoadedMsg carries a fresh tree snapshot.
type treeLoadedMsg struct{ flat []tree.Flat }

func (p *categoriesPage) load() tea.Cmd {
	return func() tea.Msg {
		flat, err := p.svcs.Categories.Flat(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return treeLoadedMsg{flat: flat}
	}
}

func (p *categoriesPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case treeLoadedMsg:
		p.flat = msg.flat
		if p.selected >= len(p.flat) {
			p.selected = len(p.flat) - 1
		}
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if p.selected > 0 {
				p.selected--
			}
		case "down", "j":
			if p.selected < len(p.flat)-1 {
				p.selected++
			}
		case "a":
			return p.withSelected(func(f tree.Flat) tea.Cmd {
				return p.mutate(fmt.Sprintf("toggled %s", f.Name), func(ctx context.Context) error {
					return p.svcs.Categories.ToggleActive(ctx, f.ID, !f.IsActive)
				})
			})
		case "d":
			return p.withSelected(func(f tree.Flat) tea.Cmd {
				return p.mutate("deleted "+f.Name, func(ctx context.Context) error {
					return p.svcs.Categories.Delete(ctx, types.Category{Node: f.Node})
				})
			})
		case "r":
			return p.load()
		}
	}
	return nil
}

func (p *categoriesPage) withSelected(fn func(tree.Flat) tea.Cmd) tea.Cmd {
	if p.selected < 0 || p.selected >= len(p.flat) {
		return nil
	}
	return fn(p.flat[p.selected])
}

// mutate runs the mutation, then reloads the whole tree regardless of the
// outcome, and reports the result.
func (p *categoriesPage) mutate(toast string, fn func(context.Context) error) tea.Cmd {
	run := func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			return errMsg{err: err}
		}
		return toastMsg{text: toast}
	}
	return tea.Sequence(run, p.load())
}

func (p *categoriesPage) View(styles Styles, width int) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Categories"))
	sb.WriteString("\n\n")

	if len(p.flat) == 0 {
		sb.WriteString(styles.Muted.Render("no categories"))
		return sb.String()
	}

	for i, f := range p.flat {
		line := strings.Repeat("  ", f.Depth)
		if f.Depth > 0 {
			line += "└ "
		}
		label := fmt.Sprintf("%s (%d products)", f.Name, f.ProductCount)
		switch {
		case i == p.selected:
			line += styles.Selected.Render(label)
		case !f.IsActive:
			line += styles.Hidden.Render(label)
		default:
			line += styles.Body.Render(label)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render("a: toggle active • d: delete • r: reload"))
	return sb.String()
}
