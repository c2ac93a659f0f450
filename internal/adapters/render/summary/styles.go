package summary

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	empty      lipgloss.Style
	entryTime  lipgloss.Style
	entryLabel lipgloss.Style
	duration   lipgloss.Style
	totalKey   lipgloss.Style
	grandTotal lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		empty:      lipgloss.NewStyle().Faint(true),
		entryTime:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		entryLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		duration:   lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		totalKey:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		grandTotal: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
	}
}
