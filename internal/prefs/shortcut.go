package prefs

import (
	"encoding/json"
	"strings"

	"vaultwidget/internal/logs"
	"vaultwidget/internal/notes"
)

const (
	// Unset is the title shown for an empty shortcut slot.
	Unset = "(unset)"
	// DefaultSlots is the number of shortcut slots on the widget.
	DefaultSlots = 2
)

// Shortcut is a user-pinned note, addressed by absolute path.
type Shortcut struct {
	TargetPath string `json:"filePath"`
}

// IsConfigured reports whether the slot points at a note.
func (s Shortcut) IsConfigured() bool {
	return strings.TrimSpace(s.TargetPath) != ""
}

// DisplayTitle is the target's file name without ext, or Unset.
func (s Shortcut) DisplayTitle(ext string) string {
	if !s.IsConfigured() {
		return Unset
	}
	p := strings.ReplaceAll(strings.TrimSpace(s.TargetPath), `\`, "/")
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	if p == "" {
		return Unset
	}
	return notes.TrimExtension(p, ext)
}

// decodeShortcuts reads the persisted slot array, always returning exactly n
// slots. Missing or corrupt data yields empty slots.
func decodeShortcuts(raw string, n int) []Shortcut {
	slots := make([]Shortcut, n)
	if strings.TrimSpace(raw) == "" {
		return slots
	}

	var stored []Shortcut
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logs.Logger.Warn("discarding corrupt shortcuts", "err", err)
		return slots
	}
	copy(slots, stored)
	return slots
}

func encodeShortcuts(slots []Shortcut) (string, error) {
	data, err := json.Marshal(slots)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
