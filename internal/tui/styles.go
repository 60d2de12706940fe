package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title    lipgloss.Style
	Tabs     lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Card     lipgloss.Style
	Banner   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Tabs:     lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0")),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")),
		Card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#7D56F4")).Padding(0, 1),
		Banner:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#F5C542")).Padding(0, 1),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")),
	}
}
