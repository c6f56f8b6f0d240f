package ui

import "github.com/charmbracelet/lipgloss"

// Lipgloss styles shared by the board renderer.
var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true)
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Bold(true)
	blackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	backStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	slotStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true)
	dragStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true)
	hoverStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	stuckStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)
