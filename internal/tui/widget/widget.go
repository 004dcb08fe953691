package widget

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vaultwidget/internal/notes"
	"vaultwidget/internal/prefs"
	"vaultwidget/internal/tui/messages"
	"vaultwidget/internal/tui/shared"
	"vaultwidget/internal/tui/theme"
)

type mode int

const (
	modeList mode = iota
	modeFilter
	modeSearch
)

// NotesModel is the widget body: the recent-notes list, the action buttons
// and the shortcut bar.
type NotesModel struct {
	all       []notes.Note
	filtered  []notes.Note
	shortcuts []prefs.Shortcut
	vaultName string
	ext       string
	loading   bool
	loadErr   error
	noVault   bool

	selected    int
	offset      int
	mode        mode
	textInput   textinput.Model
	filterQuery string

	width  int
	height int
	now    func() time.Time
}

// NewNotesModel returns an empty list waiting for its first scan.
func NewNotesModel(ext string) NotesModel {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = 40

	return NotesModel{
		ext:       ext,
		loading:   true,
		mode:      modeList,
		textInput: ti,
		now:       time.Now,
	}
}

// SetSize updates the view dimensions
func (m *NotesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.textInput.Width = max(10, width-12)
	m.clampOffset()
}

// SetNotes replaces the listed notes after a scan.
func (m *NotesModel) SetNotes(vaultName string, list []notes.Note, err error, noVault bool) {
	m.vaultName = vaultName
	m.all = list
	m.loadErr = err
	m.noVault = noVault
	m.loading = false
	m.applyFilter()
}

// SetLoading marks a rescan in progress.
func (m *NotesModel) SetLoading() {
	m.loading = true
}

// SetShortcuts replaces the shortcut bar.
func (m *NotesModel) SetShortcuts(list []prefs.Shortcut) {
	m.shortcuts = list
}

// IsTyping reports whether a text input has the keyboard.
func (m NotesModel) IsTyping() bool {
	return m.mode != modeList
}

// Selected returns the highlighted note.
func (m NotesModel) Selected() (notes.Note, bool) {
	if m.selected < 0 || m.selected >= len(m.filtered) {
		return notes.Note{}, false
	}
	return m.filtered[m.selected], true
}

// Visible returns the notes currently listed, filter applied.
func (m NotesModel) Visible() []notes.Note {
	return m.filtered
}

// HintText returns the key hints for the current mode.
func (m NotesModel) HintText() string {
	switch m.mode {
	case modeFilter:
		return "type to filter  enter:keep  esc:clear"
	case modeSearch:
		return "enter:search in app  esc:cancel"
	default:
		return "enter:open  o:preview  /:filter  d:daily  n:new  s:search  1-9:shortcut  ,:settings  ?:help  q:quit"
	}
}

func (m *NotesModel) applyFilter() {
	m.filtered = notes.Filter(m.all, m.filterQuery)
	if m.selected >= len(m.filtered) {
		m.selected = max(0, len(m.filtered)-1)
	}
	m.clampOffset()
}

func (m NotesModel) Init() tea.Cmd {
	return nil
}

// Update handles list events, returns (NotesModel, tea.Cmd) as a child view
func (m NotesModel) Update(msg tea.Msg) (NotesModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode != modeList {
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.mode {
	case modeFilter:
		return m.updateFilter(keyMsg)
	case modeSearch:
		return m.updateSearch(keyMsg)
	default:
		return m.updateList(keyMsg)
	}
}

func (m NotesModel) updateList(msg tea.KeyMsg) (NotesModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.selected < len(m.filtered)-1 {
			m.selected++
			m.clampOffset()
		}

	case "k", "up":
		if m.selected > 0 {
			m.selected--
			m.clampOffset()
		}

	case "g", "home":
		m.selected = 0
		m.clampOffset()

	case "G", "end":
		m.selected = max(0, len(m.filtered)-1)
		m.clampOffset()

	case "enter":
		if note, ok := m.Selected(); ok {
			return m, messages.Send(messages.OpenNoteMsg{Note: note})
		}

	case "o", "l", "right":
		if note, ok := m.Selected(); ok {
			return m, messages.Send(messages.ShowNoteMsg{Note: note})
		}

	case "esc":
		if m.filterQuery != "" {
			m.filterQuery = ""
			m.applyFilter()
		}

	case "/":
		m.mode = modeFilter
		m.textInput.Placeholder = "Filter notes..."
		m.textInput.SetValue(m.filterQuery)
		m.textInput.Focus()
		return m, textinput.Blink

	case "s":
		m.mode = modeSearch
		m.textInput.Placeholder = "Search the vault..."
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, textinput.Blink

	case "d":
		return m, messages.Send(messages.ActionMsg{Action: messages.ActionDaily})

	case "n":
		return m, messages.Send(messages.ActionMsg{Action: messages.ActionNew})

	case "N":
		return m, messages.Send(messages.ActionMsg{Action: messages.ActionNewDated})

	case "H":
		return m, messages.Send(messages.ActionMsg{Action: messages.ActionHome})

	case "r":
		m.loading = true
		return m, messages.Send(messages.RefreshMsg{})

	case ",":
		return m, messages.Send(messages.SwitchViewMsg{View: messages.ViewSettings})

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		slot := int(msg.String()[0] - '1')
		if slot < len(m.shortcuts) {
			return m, messages.Send(messages.ActionMsg{Action: messages.ActionShortcut, Slot: slot})
		}
	}

	return m, nil
}

func (m NotesModel) updateFilter(msg tea.KeyMsg) (NotesModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.filterQuery = ""
		m.textInput.Blur()
		m.applyFilter()
		return m, nil
	case "enter":
		m.mode = modeList
		m.textInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.filterQuery = m.textInput.Value()
	m.applyFilter()
	return m, cmd
}

func (m NotesModel) updateSearch(msg tea.KeyMsg) (NotesModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.textInput.Blur()
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.textInput.Value())
		m.mode = modeList
		m.textInput.Blur()
		return m, messages.Send(messages.ActionMsg{Action: messages.ActionSearch, Query: query})
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// rowHeight is the number of lines one note takes in the list.
const rowHeight = 3

func (m NotesModel) visibleRows() int {
	// header, shortcut bar (3 lines), input line, spacer
	rows := (m.height - 6) / rowHeight
	return max(1, rows)
}

func (m *NotesModel) clampOffset() {
	rows := m.visibleRows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m NotesModel) View() string {
	var b strings.Builder

	header := theme.Header.Render(m.vaultName)
	count := theme.Muted.Render(fmt.Sprintf(" %d notes", len(m.filtered)))
	b.WriteString(header + count + "\n")
	b.WriteString(m.renderShortcuts() + "\n")

	switch m.mode {
	case modeFilter:
		b.WriteString("Filter: " + m.textInput.View() + "\n")
	case modeSearch:
		b.WriteString("Search: " + m.textInput.View() + "\n")
	default:
		if m.filterQuery != "" {
			b.WriteString(theme.Muted.Render("Filter: "+m.filterQuery+"  (esc to clear)") + "\n")
		} else {
			b.WriteString("\n")
		}
	}

	b.WriteString(m.renderList())

	return shared.WithBottomHints(b.String(), theme.HelpHint.Render(m.HintText()), m.height)
}

func (m NotesModel) renderShortcuts() string {
	if len(m.shortcuts) == 0 {
		return ""
	}
	buttons := make([]string, 0, len(m.shortcuts))
	for i, sc := range m.shortcuts {
		label := fmt.Sprintf("%d %s", i+1, sc.DisplayTitle(m.ext))
		if sc.IsConfigured() {
			buttons = append(buttons, theme.ShortcutSet.Render(label))
		} else {
			buttons = append(buttons, theme.ShortcutUnset.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func (m NotesModel) renderList() string {
	switch {
	case m.loading && len(m.all) == 0:
		return theme.Muted.Render("Scanning vault...")
	case m.noVault:
		return theme.Muted.Render("No vault configured. Press , to pick one.")
	case m.loadErr != nil:
		return theme.Error.Render("Could not list notes: " + m.loadErr.Error())
	case len(m.filtered) == 0 && m.filterQuery != "":
		return theme.Muted.Render("No notes match the filter.")
	case len(m.filtered) == 0:
		return theme.Muted.Render("No notes found.")
	}

	width := max(20, m.width-4)
	end := min(len(m.filtered), m.offset+m.visibleRows())

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		n := m.filtered[i]

		cursor := "  "
		title := theme.NoteTitle.Render(shared.Truncate(n.Title, width-20))
		if i == m.selected {
			cursor = theme.Cursor.Render("> ")
			title = theme.SelectedBg.Render(shared.Truncate(n.Title, width-20))
		}
		modified := theme.NoteModified.Render(relativeTime(m.now(), n.LastModified))
		b.WriteString(cursor + title + "  " + modified + "\n")

		meta := theme.NoteLabel.Render(n.VaultLabel)
		if len(n.Tags) > 0 {
			meta += " " + theme.Tag.Render("#"+strings.Join(n.Tags, " #"))
		}
		preview := strings.ReplaceAll(n.Preview, "\n", " ")
		b.WriteString("  " + meta + "  " + theme.NotePreview.Render(shared.Truncate(preview, width-lipgloss.Width(meta)-2)) + "\n")
		b.WriteString("\n")
	}
	return b.String()
}

// relativeTime renders t relative to now the way a widget does.
func relativeTime(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
