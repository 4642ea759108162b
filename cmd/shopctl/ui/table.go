package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders tabular list data with a selected row highlight.
type Table struct {
	Headers  []string
	Rows     [][]string
	Selected int
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers, Selected: -1}
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// View renders the table.
func (t *Table) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return styles.Muted.Render("no results")
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	selectedStyle := styles.Selected.Padding(0, 1)

	var sb strings.Builder
	for i, h := range t.Headers {
		sb.WriteString(headerStyle.Width(widths[i]).Render(h))
	}
	sb.WriteString("\n")

	for r, row := range t.Rows {
		style := rowStyle
		if r == t.Selected {
			style = selectedStyle
		}
		for i, cell := range row {
			if i < len(widths) {
				sb.WriteString(style.Width(widths[i]).Render(cell))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
