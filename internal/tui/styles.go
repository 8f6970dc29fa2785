package tui

import "github.com/charmbracelet/lipgloss"

var (
	hudStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(hudWidth - 1)
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd166")).Bold(true).MarginBottom(1)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8c42"))
	recordingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 2)
)
