package tui

import (
	"context"
	"fmt"
	"path"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vaultwidget/internal/config"
	"vaultwidget/internal/deeplink"
	"vaultwidget/internal/picker"
	"vaultwidget/internal/prefs"
	"vaultwidget/internal/scanner"
	"vaultwidget/internal/tui/detail"
	"vaultwidget/internal/tui/messages"
	"vaultwidget/internal/tui/settings"
	"vaultwidget/internal/tui/shared"
	"vaultwidget/internal/tui/widget"
	"vaultwidget/internal/vault"
)

// Launcher hands a link to the note application.
type Launcher interface {
	Launch(ctx context.Context, uri string) bool
}

// Deps is what the interactive widget needs from the host.
type Deps struct {
	Config       *config.Config
	Store        prefs.Store
	Scanner      *scanner.Scanner
	Links        deeplink.Builder
	Launcher     Launcher
	RootOverride vault.Root
	GlamourStyle string         // "auto" when empty
	Broker       *picker.Broker // a new broker when nil
	Now          func() time.Time
}

// AppModel is the root model that dispatches to child views
type AppModel struct {
	ctx          context.Context
	deps         Deps
	currentView  ViewType
	notesView    widget.NotesModel
	detailView   detail.DetailModel
	settingsView settings.SettingsModel
	root         vault.Root
	dailyFolder  string
	shortcuts    []prefs.Shortcut
	status       string
	statusErr    bool
	showHelp     bool
	width        int
	height       int
	ready        bool
}

// NewAppModel creates the root application model
func NewAppModel(ctx context.Context, deps Deps) AppModel {
	if deps.Broker == nil {
		deps.Broker = picker.NewBroker()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return AppModel{
		ctx:          ctx,
		deps:         deps,
		currentView:  ViewNotes,
		notesView:    widget.NewNotesModel(deps.Config.Extension),
		detailView:   detail.NewDetailModel(deps.GlamourStyle),
		settingsView: settings.NewSettingsModel(deps.Broker, deps.Config.Extension, deps.Config.ShortcutSlots),
		root:         vault.FilesystemRoot{},
		dailyFolder:  prefs.DefaultDailyFolder,
	}
}

// Run starts the widget on the terminal and blocks until it exits.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(NewAppModel(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(loadSettingsCmd(m.ctx, m.deps), loadNotesCmd(m.ctx, m.deps))
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := msg.Height - 2 // Reserve space for status bar
		m.notesView.SetSize(msg.Width, contentHeight)
		m.detailView.SetSize(msg.Width, contentHeight)
		m.settingsView.SetSize(msg.Width, contentHeight)
		return m, nil

	case messages.NotesLoadedMsg:
		m.root = msg.Root
		noVault := msg.Root == nil || msg.Root.IsZero()
		m.notesView.SetNotes(vault.Name(msg.Root), msg.Notes, msg.Err, noVault)
		return m, nil

	case messages.SettingsLoadedMsg:
		if msg.Err != nil {
			m.setStatus("Could not load settings: "+msg.Err.Error(), true)
		} else {
			m.dailyFolder = msg.DailyFolder
			m.shortcuts = msg.Shortcuts
			m.notesView.SetShortcuts(msg.Shortcuts)
		}
		m.settingsView.SetSettings(msg)
		return m, nil

	case SwitchViewMsg:
		m.currentView = msg.View
		if msg.View == ViewSettings {
			return m, loadSettingsCmd(m.ctx, m.deps)
		}
		return m, nil

	case RefreshMsg:
		m.notesView.SetLoading()
		m.setStatus("Refreshing...", false)
		return m, tea.Batch(loadSettingsCmd(m.ctx, m.deps), loadNotesCmd(m.ctx, m.deps))

	case messages.OpenNoteMsg:
		id := vault.RelativeIdentifier(msg.Note.SourceID, m.root, m.deps.Config.Extension)
		return m, launchCmd(m.ctx, m.deps, m.deps.Links.OpenNote(vault.Name(m.root), id))

	case messages.ShowNoteMsg:
		m.detailView.SetNote(msg.Note)
		m.currentView = ViewDetail
		return m, readNoteCmd(m.ctx, m.deps, msg.Note.SourceID)

	case messages.NoteContentMsg:
		m.detailView.SetContent(msg)
		return m, nil

	case messages.ActionMsg:
		return m.handleAction(msg)

	case messages.LaunchResultMsg:
		if msg.OK {
			m.setStatus("Opened "+msg.URI, false)
		} else {
			m.setStatus("Could not open "+msg.URI, true)
		}
		return m, nil

	case messages.StatusMsg:
		m.setStatus(msg.Text, msg.Err)
		return m, nil

	case messages.PickerResultMsg:
		// Results are routed to settings whichever view is showing.
		var cmd tea.Cmd
		m.settingsView, cmd = m.settingsView.Update(msg)
		return m, cmd

	case messages.SetVaultRootMsg:
		root := msg.Root
		return m, saveCmd(m.ctx, "vault", func(ctx context.Context) error {
			return m.deps.Store.SetVaultRoot(ctx, root)
		})

	case messages.SetDailyFolderMsg:
		folder := msg.Folder
		return m, saveCmd(m.ctx, "daily folder", func(ctx context.Context) error {
			return m.deps.Store.SetDailyFolder(ctx, folder)
		})

	case messages.SetShortcutMsg:
		slot, sc := msg.Slot, msg.Shortcut
		return m, saveCmd(m.ctx, fmt.Sprintf("shortcut %d", slot+1), func(ctx context.Context) error {
			return m.deps.Store.SetShortcut(ctx, slot, sc)
		})

	case messages.SavedMsg:
		if msg.Err != nil {
			m.setStatus("Could not save "+msg.What+": "+msg.Err.Error(), true)
			return m, nil
		}
		m.setStatus("Saved "+msg.What, false)
		if msg.What == "vault" {
			m.notesView.SetLoading()
			return m, tea.Batch(loadSettingsCmd(m.ctx, m.deps), loadNotesCmd(m.ctx, m.deps))
		}
		return m, loadSettingsCmd(m.ctx, m.deps)

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if !m.childIsTyping() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			}
		}
	}

	// Dispatch to current child view
	var cmd tea.Cmd
	switch m.currentView {
	case ViewNotes:
		m.notesView, cmd = m.notesView.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}
	return m, cmd
}

func (m AppModel) childIsTyping() bool {
	switch m.currentView {
	case ViewNotes:
		return m.notesView.IsTyping()
	case ViewSettings:
		return m.settingsView.IsTyping()
	}
	return false
}

func (m *AppModel) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// handleAction builds the link behind a widget button and launches it.
func (m AppModel) handleAction(msg messages.ActionMsg) (tea.Model, tea.Cmd) {
	links := m.deps.Links
	name := vault.Name(m.root)

	var uri string
	switch msg.Action {
	case messages.ActionDaily:
		uri = links.DailyNote(name)
	case messages.ActionNew:
		uri = links.NewNote(name, "")
	case messages.ActionNewDated:
		uri = links.NewNote(name, path.Join(m.dailyFolder, deeplink.DailyNoteName(m.deps.Now())))
	case messages.ActionSearch:
		uri = links.Search(name, msg.Query)
	case messages.ActionHome:
		uri = links.AppHome()
	case messages.ActionShortcut:
		if msg.Slot < 0 || msg.Slot >= len(m.shortcuts) || !m.shortcuts[msg.Slot].IsConfigured() {
			// An empty slot opens the settings so it can be filled.
			m.currentView = ViewSettings
			m.setStatus(fmt.Sprintf("Shortcut %d is not set", msg.Slot+1), false)
			return m, loadSettingsCmd(m.ctx, m.deps)
		}
		id := vault.RelativeIdentifier(m.shortcuts[msg.Slot].TargetPath, m.root, m.deps.Config.Extension)
		uri = links.OpenNote(name, id)
	default:
		return m, nil
	}

	return m, launchCmd(m.ctx, m.deps, uri)
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return shared.RenderHelpPopup(helpSections(), m.width, m.height)
	}

	var content string
	switch m.currentView {
	case ViewNotes:
		content = m.notesView.View()
	case ViewDetail:
		content = m.detailView.View()
	case ViewSettings:
		content = m.settingsView.View()
	}

	statusText := HelpStyle.Render(m.vaultSummary())
	if m.status != "" {
		style := StatusOkStyle
		if m.statusErr {
			style = StatusErrorStyle
		}
		statusText = style.Render(shared.Truncate(m.status, max(10, m.width-2)))
	}
	statusBar := StatusBarStyle.Width(m.width).Render(statusText)

	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

func (m AppModel) vaultSummary() string {
	if m.root == nil || m.root.IsZero() {
		return "No vault configured | ,:settings"
	}
	return "Vault: " + vault.Name(m.root) + " | " + m.root.Value()
}

func helpSections() []shared.HelpSection {
	return []shared.HelpSection{
		{Title: "Global", Binds: []shared.HelpBind{
			{Key: "?", Desc: "Show this help"},
			{Key: "q", Desc: "Quit"},
			{Key: "ctrl+c", Desc: "Force quit"},
		}},
		{Title: "Notes", Binds: []shared.HelpBind{
			{Key: "j / k", Desc: "Navigate notes"},
			{Key: "g / G", Desc: "First / last note"},
			{Key: "enter", Desc: "Open note in the app"},
			{Key: "o / l", Desc: "Preview note"},
			{Key: "/", Desc: "Filter notes"},
			{Key: "r", Desc: "Rescan vault"},
			{Key: ",", Desc: "Settings"},
		}},
		{Title: "Actions", Binds: []shared.HelpBind{
			{Key: "d", Desc: "Daily note"},
			{Key: "n / N", Desc: "New note / dated new note"},
			{Key: "s", Desc: "Search in the app"},
			{Key: "H", Desc: "Open the app"},
			{Key: "1-9", Desc: "Open shortcut"},
		}},
		{Title: "Settings", Binds: []shared.HelpBind{
			{Key: "enter", Desc: "Change the selected setting"},
			{Key: "x", Desc: "Clear shortcut slot"},
			{Key: "esc", Desc: "Back / cancel picker"},
		}},
	}
}
