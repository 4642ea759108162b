// Package ui is the interactive terminal frontend of shopctl: a bubbletea
// app with one page per resource, styled with lipgloss.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors, shared by both themes.
var (
	ColorDanger  = lipgloss.Color("#e53935")
	ColorSuccess = lipgloss.Color("#43a047")
	ColorWarning = lipgloss.Color("#ffb300")
	ColorInfo    = lipgloss.Color("#1e88e5")
)

// Theme holds one color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light scheme.
func LightTheme() Theme {
	return Theme{
		Background: lipgloss.Color("#f6f6f4"),
		Foreground: lipgloss.Color("#1c2733"),
		Primary:    lipgloss.Color("#1c2733"),
		Accent:     lipgloss.Color("#00897b"),
		Muted:      lipgloss.Color("#8a939c"),
		Border:     lipgloss.Color("#d8dde2"),
		IsDark:     false,
	}
}

// DarkTheme returns the dark scheme.
func DarkTheme() Theme {
	return Theme{
		Background: lipgloss.Color("#141a21"),
		Foreground: lipgloss.Color("#eceff1"),
		Primary:    lipgloss.Color("#26a69a"),
		Accent:     lipgloss.Color("#80cbc4"),
		Muted:      lipgloss.Color("#546e7a"),
		Border:     lipgloss.Color("#2c3a47"),
		IsDark:     true,
	}
}

// ThemeByName resolves a configured theme name, falling back to detection.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme guesses from the environment; dark terminals are the common
// case, so ambiguity resolves dark.
func DetectTheme() Theme {
	if cf := os.Getenv("COLORFGBG"); cf != "" {
		parts := strings.Split(cf, ";")
		if len(parts) >= 2 && (parts[len(parts)-1] == "15" || parts[len(parts)-1] == "7") {
			return LightTheme()
		}
	}
	return DarkTheme()
}

// Styles is the rendered style set the pages share.
type Styles struct {
	Theme Theme

	Header  lipgloss.Style
	Footer  lipgloss.Style
	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Active  lipgloss.Style
	Hidden  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Badge   lipgloss.Style
	Divider lipgloss.Style

	Selected   lipgloss.Style
	FieldLabel lipgloss.Style
	FieldError lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),
		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		Body:  lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted: lipgloss.NewStyle().Foreground(theme.Muted),
		Bold:  lipgloss.NewStyle().Foreground(theme.Foreground).Bold(true),
		Active: lipgloss.NewStyle().
			Foreground(ColorSuccess),
		Hidden: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Strikethrough(true),
		Success: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(ColorDanger).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Info:    lipgloss.NewStyle().Foreground(ColorInfo),
		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(theme.Background).
			Padding(0, 1),
		Divider: lipgloss.NewStyle().Foreground(theme.Border),

		Selected: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(theme.Background),
		FieldLabel: lipgloss.NewStyle().Foreground(theme.Muted),
		FieldError: lipgloss.NewStyle().Foreground(ColorDanger),
	}
}
