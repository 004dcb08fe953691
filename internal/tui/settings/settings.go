package settings

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"vaultwidget/internal/picker"
	"vaultwidget/internal/prefs"
	"vaultwidget/internal/tui/messages"
	"vaultwidget/internal/tui/shared"
	"vaultwidget/internal/tui/theme"
	"vaultwidget/internal/vault"
)

// targetVault marks a pending request whose result becomes the vault root.
// Shortcut requests use their slot index.
const targetVault = -1

const (
	rowVault = iota
	rowDaily
	rowFirstShortcut
)

// SettingsModel edits the vault root, the daily folder and the shortcut slots.
// Paths are chosen with a file picker; each picker session is a broker request
// so its result is routed back to the row that opened it.
type SettingsModel struct {
	broker *picker.Broker
	ext    string

	root        vault.Root
	dailyFolder string
	shortcuts   []prefs.Shortcut
	loadErr     error

	cursor int

	// picker session
	fp      filepicker.Model
	active  picker.Token
	pickCh  <-chan picker.Result
	pending map[picker.Token]int

	editing bool
	input   textinput.Model

	width  int
	height int
}

// NewSettingsModel returns a settings view routing picker sessions through b.
func NewSettingsModel(b *picker.Broker, ext string, slots int) SettingsModel {
	ti := textinput.New()
	ti.Placeholder = prefs.DefaultDailyFolder
	ti.CharLimit = 200
	ti.Width = 40

	return SettingsModel{
		broker:    b,
		ext:       ext,
		root:      vault.FilesystemRoot{},
		shortcuts: make([]prefs.Shortcut, slots),
		pending:   make(map[picker.Token]int),
		input:     ti,
	}
}

// SetSize updates the view dimensions
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(10, width-20)
	if m.active != "" {
		m.fp, _ = m.fp.Update(tea.WindowSizeMsg{Width: width, Height: m.pickerHeight()})
	}
}

// SetSettings installs freshly loaded preferences.
func (m *SettingsModel) SetSettings(msg messages.SettingsLoadedMsg) {
	m.loadErr = msg.Err
	if msg.Err != nil {
		return
	}
	if msg.Root != nil {
		m.root = msg.Root
	}
	m.dailyFolder = msg.DailyFolder
	m.shortcuts = msg.Shortcuts
	m.cursor = min(m.cursor, m.rowCount()-1)
}

// IsTyping reports whether keys go to the text input or the picker.
func (m SettingsModel) IsTyping() bool {
	return m.editing || m.active != ""
}

// ActiveToken is the token of the open picker session, if any.
func (m SettingsModel) ActiveToken() picker.Token {
	return m.active
}

// HintText returns the key hints for the current state.
func (m SettingsModel) HintText() string {
	switch {
	case m.active != "":
		return "enter:select  l/→:open dir  h/←:up  esc:cancel"
	case m.editing:
		return "enter:save  esc:cancel"
	default:
		return "j/k:move  enter:change  x:clear slot  esc:back  ?:help  q:quit"
	}
}

func (m SettingsModel) rowCount() int {
	return rowFirstShortcut + len(m.shortcuts)
}

func (m SettingsModel) pickerHeight() int {
	return max(5, m.height-4)
}

func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles settings events, returns (SettingsModel, tea.Cmd) as a child view
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	if result, ok := msg.(messages.PickerResultMsg); ok {
		return m.handlePickResult(result.Result)
	}

	switch {
	case m.active != "":
		return m.updatePicker(msg)
	case m.editing:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			return m.updateEditing(keyMsg)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "h", "left":
		return m, messages.Send(messages.SwitchViewMsg{View: messages.ViewNotes})

	case "j", "down":
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "enter", "l", "right":
		switch {
		case m.cursor == rowVault:
			return m.openPicker(picker.Folder, targetVault)
		case m.cursor == rowDaily:
			m.editing = true
			m.input.SetValue(m.dailyFolder)
			m.input.CursorEnd()
			return m, m.input.Focus()
		default:
			return m.openPicker(picker.File, m.cursor-rowFirstShortcut)
		}

	case "x", "delete":
		if m.cursor >= rowFirstShortcut {
			slot := m.cursor - rowFirstShortcut
			return m, messages.Send(messages.SetShortcutMsg{Slot: slot, Shortcut: prefs.Shortcut{}})
		}
	}

	return m, nil
}

func (m SettingsModel) updateEditing(msg tea.KeyMsg) (SettingsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	case "enter":
		folder := strings.TrimSpace(m.input.Value())
		m.editing = false
		m.input.Blur()
		if folder == "" {
			return m, messages.Send(messages.StatusMsg{Text: "Daily folder cannot be blank", Err: true})
		}
		return m, messages.Send(messages.SetDailyFolderMsg{Folder: folder})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// openPicker starts a picker session for target.
func (m SettingsModel) openPicker(kind picker.Kind, target int) (SettingsModel, tea.Cmd) {
	tok, ch := m.broker.Request(kind)
	m.pending[tok] = target
	m.active = tok
	m.pickCh = ch

	fp := filepicker.New()
	fp.CurrentDirectory = m.startDir()
	fp.AutoHeight = true
	fp.ShowHidden = false
	if kind == picker.Folder {
		fp.DirAllowed = true
		fp.FileAllowed = false
	} else {
		fp.DirAllowed = false
		fp.FileAllowed = true
		fp.AllowedTypes = []string{m.ext}
	}
	fp, _ = fp.Update(tea.WindowSizeMsg{Width: m.width, Height: m.pickerHeight()})
	m.fp = fp

	return m, tea.Batch(m.fp.Init(), waitForPick(ch))
}

// startDir is the vault folder when it is reachable, else the home directory.
func (m SettingsModel) startDir() string {
	var dir string
	switch r := m.root.(type) {
	case vault.FilesystemRoot:
		dir = r.Path
	case vault.TreeRoot:
		dir = r.FilesystemPath()
	}
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

func (m SettingsModel) updatePicker(msg tea.Msg) (SettingsModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		tok := m.active
		m.active = ""
		if err := m.broker.Cancel(tok); err != nil {
			return m, messages.Send(messages.StatusMsg{Text: err.Error(), Err: true})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.fp, cmd = m.fp.Update(msg)

	if didSelect, path := m.fp.DidSelectFile(msg); didSelect {
		tok := m.active
		m.active = ""
		if err := m.broker.Resolve(tok, path); err != nil {
			return m, messages.Send(messages.StatusMsg{Text: err.Error(), Err: true})
		}
		return m, nil
	}

	return m, cmd
}

// handlePickResult turns a finished picker request into a preference write.
func (m SettingsModel) handlePickResult(res picker.Result) (SettingsModel, tea.Cmd) {
	target, ok := m.pending[res.Token]
	if !ok {
		return m, nil
	}
	delete(m.pending, res.Token)
	if m.active == res.Token {
		m.active = ""
	}

	if res.Canceled {
		return m, messages.Send(messages.StatusMsg{Text: "Selection canceled"})
	}

	if target == targetVault {
		return m, messages.Send(messages.SetVaultRootMsg{Root: vault.FilesystemRoot{Path: res.Value}})
	}
	return m, messages.Send(messages.SetShortcutMsg{
		Slot:     target,
		Shortcut: prefs.Shortcut{TargetPath: res.Value},
	})
}

// waitForPick blocks until the request behind ch finishes.
func waitForPick(ch <-chan picker.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return nil
		}
		return messages.PickerResultMsg{Result: res}
	}
}

func (m SettingsModel) View() string {
	var b strings.Builder
	b.WriteString(theme.Header.Render("Settings") + "\n\n")

	if m.active != "" {
		kind, _ := m.broker.Kind(m.active)
		b.WriteString(theme.Subtitle.Render("Choose a "+kind.String()) + "\n")
		b.WriteString(theme.Muted.Render(m.fp.CurrentDirectory) + "\n")
		b.WriteString(m.fp.View())
		return shared.WithBottomHints(b.String(), theme.HelpHint.Render(m.HintText()), m.height)
	}

	if m.loadErr != nil {
		b.WriteString(theme.Error.Render("Could not load settings: "+m.loadErr.Error()) + "\n\n")
	}

	rootValue := theme.Muted.Render("not configured")
	if m.root != nil && !m.root.IsZero() {
		rootValue = m.root.Value() + theme.Muted.Render(" ("+vault.Name(m.root)+")")
	}
	b.WriteString(m.renderRow(rowVault, "Vault", rootValue))

	daily := m.dailyFolder
	if m.editing {
		daily = m.input.View()
	}
	b.WriteString(m.renderRow(rowDaily, "Daily folder", daily))

	for i, sc := range m.shortcuts {
		value := theme.Muted.Render(prefs.Unset)
		if sc.IsConfigured() {
			value = sc.DisplayTitle(m.ext) + theme.Muted.Render("  "+sc.TargetPath)
		}
		b.WriteString(m.renderRow(rowFirstShortcut+i, fmt.Sprintf("Shortcut %d", i+1), value))
	}

	return shared.WithBottomHints(b.String(), theme.HelpHint.Render(m.HintText()), m.height)
}

func (m SettingsModel) renderRow(row int, label, value string) string {
	cursor := "  "
	labelStyle := theme.NoteLabel
	if row == m.cursor {
		cursor = theme.Cursor.Render("> ")
		labelStyle = theme.Bold
	}
	return cursor + labelStyle.Width(14).Render(label) + value + "\n"
}
