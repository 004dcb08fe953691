package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"vaultwidget/internal/logs"
	"vaultwidget/internal/notes"
	"vaultwidget/internal/tui/messages"
	"vaultwidget/internal/tui/shared"
	"vaultwidget/internal/tui/theme"
)

// outlineWidth is the width of the heading sidebar.
const outlineWidth = 28

// DetailModel shows one note rendered as markdown next to its outline.
type DetailModel struct {
	note     notes.Note
	raw      []byte
	outline  []notes.Heading
	loading  bool
	err      error
	viewport viewport.Model
	style    string
	width    int
	height   int
}

// NewDetailModel returns an empty detail view. style is a glamour style name;
// "auto" picks one from the terminal background.
func NewDetailModel(style string) DetailModel {
	if style == "" {
		style = "auto"
	}
	return DetailModel{
		viewport: viewport.New(80, 20),
		style:    style,
	}
}

// SetSize updates the view dimensions
func (m *DetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(20, width-outlineWidth-3)
	m.viewport.Height = max(3, height-3)
	m.render()
}

// SetNote switches to note while its content loads.
func (m *DetailModel) SetNote(note notes.Note) {
	m.note = note
	m.raw = nil
	m.outline = nil
	m.err = nil
	m.loading = true
	m.viewport.SetContent(theme.Muted.Render("Loading..."))
	m.viewport.GotoTop()
}

// SetContent installs the raw text of the shown note. Content for another
// note is ignored.
func (m *DetailModel) SetContent(msg messages.NoteContentMsg) {
	if msg.SourceID != m.note.SourceID {
		return
	}
	m.loading = false
	m.err = msg.Err
	m.raw = msg.Raw
	if msg.Raw != nil {
		m.outline = notes.Outline(string(msg.Raw))
	}
	m.render()
}

// Note returns the note on display.
func (m DetailModel) Note() notes.Note {
	return m.note
}

// Outline returns the headings of the note on display.
func (m DetailModel) Outline() []notes.Heading {
	return m.outline
}

// HintText returns the key hints for the detail view.
func (m DetailModel) HintText() string {
	return "j/k:scroll  enter:open in app  esc:back  ?:help  q:quit"
}

func (m *DetailModel) render() {
	if m.loading {
		return
	}

	source := m.note.Preview
	if m.raw != nil {
		source = string(m.raw)
	}
	if m.err != nil {
		source = m.note.Preview
	}

	rendered, err := m.renderMarkdown(source)
	if err != nil {
		logs.Logger.Warn("markdown render failed", "note", m.note.FileName, "err", err)
		rendered = source
	}
	m.viewport.SetContent(rendered)
}

func (m DetailModel) renderMarkdown(source string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(m.viewport.Width)}
	if m.style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(m.style))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return renderer.Render(source)
}

func (m DetailModel) Init() tea.Cmd {
	return nil
}

// Update handles detail events, returns (DetailModel, tea.Cmd) as a child view
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "h", "left", "backspace":
			return m, messages.Send(messages.SwitchViewMsg{View: messages.ViewNotes})
		case "enter":
			return m, messages.Send(messages.OpenNoteMsg{Note: m.note})
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m DetailModel) View() string {
	title := theme.Title.Render(m.note.Title)
	meta := theme.NoteLabel.Render(m.note.VaultLabel+"/"+m.note.FileName) + "  " +
		theme.NoteModified.Render(m.note.LastModified.Format("2006-01-02 15:04"))
	if len(m.note.Tags) > 0 {
		meta += "  " + theme.Tag.Render("#"+strings.Join(m.note.Tags, " #"))
	}

	body := m.viewport.View()
	if m.err != nil {
		body = theme.Error.Render("Could not read note: "+m.err.Error()) + "\n" + body
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, body, theme.Sidebar.Render(m.renderOutline()))
	page := title + "\n" + meta + "\n" + content

	return shared.WithBottomHints(page, theme.HelpHint.Render(m.HintText()), m.height)
}

func (m DetailModel) renderOutline() string {
	if len(m.outline) == 0 {
		return theme.Muted.Render("No headings")
	}
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Outline") + "\n")
	for _, h := range m.outline {
		indent := strings.Repeat(" ", 2*(h.Level-1))
		b.WriteString(shared.Truncate(fmt.Sprintf("%s%s", indent, h.Text), outlineWidth-2) + "\n")
	}
	return b.String()
}
