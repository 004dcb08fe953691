package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"vaultwidget/internal/notes"
	"vaultwidget/internal/picker"
	"vaultwidget/internal/prefs"
	"vaultwidget/internal/vault"
)

// ViewType represents the different views in the application
type ViewType int

const (
	ViewNotes ViewType = iota
	ViewDetail
	ViewSettings
)

// SwitchViewMsg is sent by child views to switch to a different view
type SwitchViewMsg struct {
	View ViewType
}

// RefreshMsg asks for a rescan of the vault and a reload of the settings.
type RefreshMsg struct{}

// NotesLoadedMsg carries the result of a scan.
type NotesLoadedMsg struct {
	Root  vault.Root
	Notes []notes.Note
	Err   error
}

// SettingsLoadedMsg carries the stored preferences.
type SettingsLoadedMsg struct {
	Root        vault.Root
	DailyFolder string
	Shortcuts   []prefs.Shortcut
	Err         error
}

// OpenNoteMsg asks for the note to be opened in the note application.
type OpenNoteMsg struct {
	Note notes.Note
}

// ShowNoteMsg asks for the note to be shown in the detail view.
type ShowNoteMsg struct {
	Note notes.Note
}

// NoteContentMsg carries the raw text of a note for the detail view.
type NoteContentMsg struct {
	SourceID string
	Raw      []byte
	Err      error
}

// Action is a widget button.
type Action int

const (
	ActionDaily Action = iota
	ActionNew
	ActionNewDated
	ActionSearch
	ActionHome
	ActionShortcut
)

// ActionMsg triggers a widget button. Query is used by ActionSearch and
// Slot by ActionShortcut.
type ActionMsg struct {
	Action Action
	Query  string
	Slot   int
}

// LaunchResultMsg reports whether a link was handed off.
type LaunchResultMsg struct {
	URI string
	OK  bool
}

// StatusMsg sets the status bar text.
type StatusMsg struct {
	Text string
	Err  bool
}

// PickerResultMsg delivers the outcome of a picker request.
type PickerResultMsg struct {
	Result picker.Result
}

// SetVaultRootMsg asks for the vault root to be stored.
type SetVaultRootMsg struct {
	Root vault.Root
}

// SetDailyFolderMsg asks for the daily folder to be stored.
type SetDailyFolderMsg struct {
	Folder string
}

// SetShortcutMsg asks for a shortcut slot to be stored.
type SetShortcutMsg struct {
	Slot     int
	Shortcut prefs.Shortcut
}

// SavedMsg reports the outcome of a preference write.
type SavedMsg struct {
	What string
	Err  error
}

// Send wraps msg in a command.
func Send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
