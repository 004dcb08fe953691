package notes

import (
	"github.com/sahilm/fuzzy"
)

// searchSource exposes notes to fuzzy matching by title and file name.
type searchSource []Note

func (s searchSource) String(i int) string { return s[i].Title + " " + s[i].FileName }
func (s searchSource) Len() int            { return len(s) }

// Filter returns the notes matching query, best match first. An empty query
// returns list unchanged.
func Filter(list []Note, query string) []Note {
	if query == "" {
		return list
	}
	matches := fuzzy.FindFrom(query, searchSource(list))
	out := make([]Note, 0, len(matches))
	for _, m := range matches {
		out = append(out, list[m.Index])
	}
	return out
}
