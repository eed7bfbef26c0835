package tui

import (
	"github.com/charmbracelet/lipgloss"

	"pkt.systems/kubedeck/schema"
)

// Theme bundles the lipgloss styles used across the views.
type Theme struct {
	Name schema.ThemeName

	Border        lipgloss.Style
	BorderFocused lipgloss.Style
	Title         lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	StatusBar     lipgloss.Style
	StatusError   lipgloss.Style
	Muted         lipgloss.Style
	Accent        lipgloss.Style
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
}

func newTheme(name schema.ThemeName, accent, muted, bad lipgloss.Color) Theme {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted)
	return Theme{
		Name:          name,
		Border:        border,
		BorderFocused: border.BorderForeground(accent),
		Title:         lipgloss.NewStyle().Bold(true).Foreground(accent),
		TabActive:     lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true),
		TabInactive:   lipgloss.NewStyle().Foreground(muted),
		StatusBar:     lipgloss.NewStyle().Foreground(muted),
		StatusError:   lipgloss.NewStyle().Bold(true).Foreground(bad),
		Muted:         lipgloss.NewStyle().Foreground(muted),
		Accent:        lipgloss.NewStyle().Foreground(accent),
		TableHeader:   lipgloss.NewStyle().Bold(true),
		TableSelected: lipgloss.NewStyle().Bold(true).Foreground(accent),
	}
}

// ThemeByName resolves a theme, falling back to the default for unknown names.
func ThemeByName(name schema.ThemeName) Theme {
	normalized, ok := schema.NormalizeThemeName(string(name))
	if !ok {
		normalized = schema.DefaultTheme
	}
	switch normalized {
	case "gruvbox":
		return newTheme(normalized, lipgloss.Color("214"), lipgloss.Color("245"), lipgloss.Color("167"))
	case "mono":
		return newTheme(normalized, lipgloss.Color("15"), lipgloss.Color("8"), lipgloss.Color("7"))
	default:
		return newTheme("deck", lipgloss.Color("39"), lipgloss.Color("244"), lipgloss.Color("203"))
	}
}
