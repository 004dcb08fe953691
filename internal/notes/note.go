package notes

import (
	"strings"
	"time"

	"vaultwidget/internal/apperr"
)

// Note is a summary of one markdown file in a vault
type Note struct {
	Title        string    // First H1, or the filename without extension
	FileName     string    // Base name including extension
	Preview      string    // Plain-text excerpt, possibly truncated
	VaultLabel   string    // Human name of the vault the note was found in
	LastModified time.Time // File modification time
	SourceID     string    // Absolute path, or document URI for tree vaults
	Tags         []string  // From frontmatter `tags`, if any
}

// NewNote validates the required fields and returns the note.
func NewNote(n Note) (Note, error) {
	switch {
	case strings.TrimSpace(n.Title) == "":
		return Note{}, apperr.Invalid("new note", "title cannot be blank")
	case strings.TrimSpace(n.FileName) == "":
		return Note{}, apperr.Invalid("new note", "file name cannot be blank")
	case strings.TrimSpace(n.VaultLabel) == "":
		return Note{}, apperr.Invalid("new note", "vault label cannot be blank")
	}
	return n, nil
}
