package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("4")
	colorSuccess = lipgloss.Color("2")
	colorWarning = lipgloss.Color("3")
	colorDanger  = lipgloss.Color("1")
	colorMuted   = lipgloss.Color("8")

	tabStyle       = lipgloss.NewStyle().Padding(0, 2)
	activeTabStyle = tabStyle.Bold(true).Foreground(colorPrimary).Underline(true)

	cursorStyle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	checkStyle   = lipgloss.NewStyle().Foreground(colorSuccess)
	todayStyle   = lipgloss.NewStyle().Foreground(colorWarning)
	sectionStyle = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle   = lipgloss.NewStyle().Foreground(colorDanger)

	inputBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(colorMuted)
)
