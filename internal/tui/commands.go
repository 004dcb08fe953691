package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"vaultwidget/internal/apperr"
	"vaultwidget/internal/logs"
	"vaultwidget/internal/tui/messages"
	"vaultwidget/internal/vault"
)

// activeRoot is the override when one was given, else the stored root.
func activeRoot(ctx context.Context, deps Deps) (vault.Root, error) {
	if deps.RootOverride != nil {
		return deps.RootOverride, nil
	}
	return deps.Store.VaultRoot(ctx)
}

func loadNotesCmd(ctx context.Context, deps Deps) tea.Cmd {
	return func() tea.Msg {
		root, err := activeRoot(ctx, deps)
		if err != nil {
			return messages.NotesLoadedMsg{Root: vault.FilesystemRoot{}, Err: err}
		}
		if root.IsZero() {
			return messages.NotesLoadedMsg{Root: root}
		}

		list, err := deps.Scanner.Scan(ctx, root, deps.Config.MaxNotes)
		if err != nil {
			logs.Logger.Error("scan failed", "root", root.Value(), "err", err)
		}
		return messages.NotesLoadedMsg{Root: root, Notes: list, Err: err}
	}
}

func loadSettingsCmd(ctx context.Context, deps Deps) tea.Cmd {
	return func() tea.Msg {
		root, err := deps.Store.VaultRoot(ctx)
		if err != nil {
			return messages.SettingsLoadedMsg{Err: err}
		}
		folder, err := deps.Store.DailyFolder(ctx)
		if err != nil {
			return messages.SettingsLoadedMsg{Err: err}
		}
		shortcuts, err := deps.Store.Shortcuts(ctx)
		if err != nil {
			return messages.SettingsLoadedMsg{Err: err}
		}
		return messages.SettingsLoadedMsg{Root: root, DailyFolder: folder, Shortcuts: shortcuts}
	}
}

func readNoteCmd(ctx context.Context, deps Deps, sourceID string) tea.Cmd {
	return func() tea.Msg {
		raw, err := deps.Scanner.ReadSource(ctx, sourceID)
		if err != nil {
			logs.Logger.Warn("failed to read note", "source", sourceID, "err", err)
		}
		return messages.NoteContentMsg{SourceID: sourceID, Raw: raw, Err: err}
	}
}

func launchCmd(ctx context.Context, deps Deps, uri string) tea.Cmd {
	return func() tea.Msg {
		return messages.LaunchResultMsg{URI: uri, OK: deps.Launcher.Launch(ctx, uri)}
	}
}

// saveCmd runs a preference write and reports it as what.
func saveCmd(ctx context.Context, what string, write func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		err := write(ctx)
		if err != nil && !errors.Is(err, apperr.ErrInvalidInput) {
			logs.Logger.Error("failed to save preference", "what", what, "err", err)
		}
		return messages.SavedMsg{What: what, Err: err}
	}
}
