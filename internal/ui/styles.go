package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("63")
	ColorSuccess = lipgloss.Color("42")
	ColorError   = lipgloss.Color("196")
	ColorDim     = lipgloss.Color("241")

	ProgressStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	ToolStyle     = lipgloss.NewStyle().Bold(true)
	DetailStyle   = lipgloss.NewStyle().Foreground(ColorDim)
	DoneStyle     = lipgloss.NewStyle().Foreground(ColorSuccess)
	FailedStyle   = lipgloss.NewStyle().Foreground(ColorError)
	MarkerStyle   = lipgloss.NewStyle().Bold(true)
)
