package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	stats   lipgloss.Style
	user    lipgloss.Style
	bot     lipgloss.Style
	errMsg  lipgloss.Style
	source  lipgloss.Style
	alert   lipgloss.Style
	loading lipgloss.Style
	help    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		stats:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		user:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		bot:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		errMsg:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		source:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		alert:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		loading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		help:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}
