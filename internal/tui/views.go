package tui

import "vaultwidget/internal/tui/messages"

// Re-export types from messages package for convenience
type ViewType = messages.ViewType

const (
	ViewNotes    = messages.ViewNotes
	ViewDetail   = messages.ViewDetail
	ViewSettings = messages.ViewSettings
)

type SwitchViewMsg = messages.SwitchViewMsg
type RefreshMsg = messages.RefreshMsg
