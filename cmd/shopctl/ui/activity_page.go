package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"shopctl/internal/store"
)

// activityPage shows local state: recent searches, pins, and the mutation
// journal for this machine.
type activityPage struct {
	svcs      Services
	searches  []string
	pins      []store.Pinned
	mutations []store.JournalEntry
	loadErr   error
}

func newActivityPage(svcs Services) *activityPage {
	return &activityPage{svcs: svcs}
}

func (p *activityPage) Title() string { return "Activity" }

// activityLoadedMsg carries the local snapshot.
type activityLoadedMsg struct {
	searches  []string
	pins      []store.Pinned
	mutations []store.JournalEntry
	err       error
}

func (p *activityPage) Init() tea.Cmd {
	if p.svcs.Store == nil {
		return nil
	}
	return func() tea.Msg {
		var msg activityLoadedMsg
		msg.searches, msg.err = p.svcs.Store.RecentSearches("products")
		if msg.err == nil {
			msg.pins, msg.err = p.svcs.Store.PinnedIn("products")
		}
		if msg.err == nil {
			msg.mutations, msg.err = p.svcs.Store.RecentMutations(20)
		}
		return msg
	}
}

func (p *activityPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case activityLoadedMsg:
		p.searches, p.pins, p.mutations, p.loadErr = msg.searches, msg.pins, msg.mutations, msg.err
	case tea.KeyMsg:
		if msg.String() == "r" {
			return p.Init()
		}
	}
	return nil
}

func (p *activityPage) View(styles Styles, width int) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Activity") + "\n\n")

	if p.svcs.Store == nil {
		sb.WriteString(styles.Muted.Render("local state store disabled"))
		return sb.String()
	}
	if p.loadErr != nil {
		sb.WriteString(styles.Error.Render(p.loadErr.Error()))
		return sb.String()
	}

	sb.WriteString(styles.Bold.Render("Recent searches") + "\n")
	if len(p.searches) == 0 {
		sb.WriteString(styles.Muted.Render("  none") + "\n")
	}
	for _, q := range p.searches {
		sb.WriteString("  " + styles.Body.Render(q) + "\n")
	}

	sb.WriteString("\n" + styles.Bold.Render("Pinned") + "\n")
	if len(p.pins) == 0 {
		sb.WriteString(styles.Muted.Render("  none") + "\n")
	}
	for _, pin := range p.pins {
		sb.WriteString("  " + styles.Body.Render(fmt.Sprintf("#%d %s", pin.EntityID, pin.Label)) + "\n")
	}

	sb.WriteString("\n" + styles.Bold.Render("Recent changes from this machine") + "\n")
	if len(p.mutations) == 0 {
		sb.WriteString(styles.Muted.Render("  none") + "\n")
	}
	for _, m := range p.mutations {
		line := fmt.Sprintf("%s  %s/%s  %s",
			m.CreatedAt.Format("01-02 15:04"), m.Scope, m.Action, m.Detail)
		sb.WriteString("  " + styles.Muted.Render(line) + "\n")
	}

	sb.WriteString("\n" + styles.Muted.Render("r: reload"))
	return sb.String()
}
