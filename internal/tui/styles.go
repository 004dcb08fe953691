package tui

import (
	"github.com/charmbracelet/lipgloss"

	"vaultwidget/internal/tui/theme"
)

var (
	// Status bar
	StatusBarStyle = theme.StatusBar

	// Status text
	StatusOkStyle    = lipgloss.NewStyle().Foreground(theme.Success)
	StatusErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Danger)

	// Help text
	HelpStyle = theme.HelpHint
)
