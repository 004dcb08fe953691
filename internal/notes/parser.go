package notes

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultExtension is the note-file suffix.
	DefaultExtension = ".md"
	// DefaultPreviewLength is the preview bound in characters.
	DefaultPreviewLength = 150
	// Ellipsis is appended to truncated previews.
	Ellipsis = "..."
)

var h1Pattern = regexp.MustCompile(`(?m)^#[ \t]+(.+)$`)

// ParseOptions controls title and preview extraction
type ParseOptions struct {
	Extension     string
	PreviewLength int
}

// DefaultParseOptions returns the reference extension and preview bound.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{Extension: DefaultExtension, PreviewLength: DefaultPreviewLength}
}

// Parsed is the result of Parse
type Parsed struct {
	Title   string
	Preview string
	Tags    []string
}

// Parse extracts a title and a bounded preview from raw note text. It never
// fails: empty input yields the fallback name (minus extension) and an empty
// preview.
func Parse(raw, fallbackName string, opts ParseOptions) Parsed {
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	if opts.PreviewLength <= 0 {
		opts.PreviewLength = DefaultPreviewLength
	}

	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	body, tags := splitFrontmatter(raw)

	return Parsed{
		Title:   extractTitle(body, fallbackName, opts.Extension),
		Preview: createPreview(body, opts.PreviewLength),
		Tags:    tags,
	}
}

func extractTitle(content, fallbackName, ext string) string {
	if m := h1Pattern.FindStringSubmatch(content); m != nil {
		if title := strings.TrimSpace(m[1]); title != "" {
			return title
		}
	}
	return TrimExtension(fallbackName, ext)
}

// createPreview drops the leading run of blank and heading lines, joins the
// rest with single spaces and truncates to maxLen runes.
func createPreview(content string, maxLen int) string {
	lines := strings.Split(content, "\n")

	start := 0
	for start < len(lines) {
		line := lines[start]
		if strings.TrimSpace(line) != "" && !strings.HasPrefix(line, "#") {
			break
		}
		start++
	}

	joined := strings.TrimSpace(strings.Join(lines[start:], " "))
	if utf8.RuneCountInString(joined) <= maxLen {
		return joined
	}

	runes := []rune(joined)
	return string(runes[:maxLen]) + Ellipsis
}

// TrimExtension strips ext from the end of name, ignoring case.
func TrimExtension(name, ext string) string {
	if ext == "" || len(name) < len(ext) {
		return name
	}
	if strings.EqualFold(name[len(name)-len(ext):], ext) {
		return name[:len(name)-len(ext)]
	}
	return name
}

// HasExtension reports whether name ends with ext, ignoring case.
func HasExtension(name, ext string) bool {
	return len(name) > len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext)
}
