package theme

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Color palette, ANSI 0-15 plus one 256-color surface
// ---------------------------------------------------------------------------

var (
	Text       = lipgloss.Color("7")
	TextMuted  = lipgloss.Color("8")
	TextBright = lipgloss.Color("15")

	Primary = lipgloss.Color("5")   // magenta, the note app's accent
	Link    = lipgloss.Color("4")   // blue
	Label   = lipgloss.Color("6")   // cyan
	Success = lipgloss.Color("2")   // green
	Warning = lipgloss.Color("3")   // yellow
	Danger  = lipgloss.Color("1")   // red
	Surface = lipgloss.Color("236") // dark bg
	Border  = lipgloss.Color("8")   // dim
)

// ---------------------------------------------------------------------------
// Text styles
// ---------------------------------------------------------------------------

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Bold(true).Foreground(Label)
	Muted    = lipgloss.NewStyle().Foreground(TextMuted)
	Bold     = lipgloss.NewStyle().Bold(true)

	Error = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Ok    = lipgloss.NewStyle().Bold(true).Foreground(Success)

	Cursor     = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	SelectedBg = lipgloss.NewStyle().Foreground(TextBright).Background(Surface)

	NoteTitle    = lipgloss.NewStyle().Bold(true).Foreground(TextBright)
	NotePreview  = lipgloss.NewStyle().Foreground(Text)
	NoteLabel    = lipgloss.NewStyle().Foreground(Label)
	NoteModified = lipgloss.NewStyle().Foreground(TextMuted)
	Tag          = lipgloss.NewStyle().Foreground(Warning)
)

// ---------------------------------------------------------------------------
// Component helpers
// ---------------------------------------------------------------------------

var (
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextBright).
		Background(Primary).
		Padding(0, 1)

	ShortcutSet = lipgloss.NewStyle().
			Foreground(Link).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Link).
			Padding(0, 1)

	ShortcutUnset = lipgloss.NewStyle().
			Foreground(TextMuted).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	StatusBar = lipgloss.NewStyle().
			Foreground(TextMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	HelpHint = lipgloss.NewStyle().Foreground(TextMuted)

	Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Border).
		PaddingLeft(1)
)
