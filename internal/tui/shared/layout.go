package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FillHeight pads content with blank lines, or cuts it, to exactly height
// lines.
func FillHeight(content string, height int) string {
	content = strings.TrimRight(content, "\n")
	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if height <= 0 {
		return ""
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// WithBottomHints renders content at the top of height lines with hints
// pinned to the last line.
func WithBottomHints(content, hints string, height int) string {
	hints = strings.TrimRight(hints, "\n")
	hintLines := strings.Count(hints, "\n") + 1
	return FillHeight(content, height-hintLines) + "\n" + hints
}

// Truncate shortens s to width cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
