package main

import "github.com/charmbracelet/lipgloss"

var (
	styleTitle = lipgloss.NewStyle().Bold(true)
	styleStep  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))  // blue
	styleKey   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // gray
	styleOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // green
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // orange
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // red
)
