package vault

import (
	"strings"

	"vaultwidget/internal/notes"
)

// Name derives the human vault name from a root: its last non-empty path
// segment, or DefaultName.
func Name(root Root) string {
	var path string
	switch r := root.(type) {
	case FilesystemRoot:
		path = r.Path
	case TreeRoot:
		_, path, _ = r.Volume()
	default:
		return DefaultName
	}

	if seg := lastSegment(normalizeSeparators(strings.TrimSpace(path))); seg != "" {
		return seg
	}
	return DefaultName
}

// RelativeIdentifier turns an absolute note path into the vault-relative
// identifier used by deep links ("Projects/todo"). A document URI from a tree
// scan is first mapped onto its storage path. A note outside the vault,
// or any note when the root is unconfigured, resolves to its own file name.
// Both inputs tolerate backslash separators.
func RelativeIdentifier(notePath string, root Root, ext string) string {
	notePath = strings.TrimSpace(notePath)
	if path, ok := DocumentPath(notePath); ok {
		notePath = path
	}
	note := normalizeSeparators(notePath)

	if base := comparablePath(root); base != "" {
		if rel, ok := strings.CutPrefix(note, base+"/"); ok {
			if rel = strings.TrimLeft(rel, "/"); rel != "" {
				return notes.TrimExtension(rel, ext)
			}
		}
	}

	return notes.TrimExtension(lastSegment(note), ext)
}

// comparablePath returns the root as a slash-separated filesystem path with
// no trailing separator, or "" when the root cannot contain notes.
func comparablePath(root Root) string {
	var path string
	switch r := root.(type) {
	case FilesystemRoot:
		path = r.Path
	case TreeRoot:
		path = r.FilesystemPath()
	default:
		return ""
	}
	return strings.TrimRight(normalizeSeparators(strings.TrimSpace(path)), "/")
}

func normalizeSeparators(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func lastSegment(p string) string {
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
