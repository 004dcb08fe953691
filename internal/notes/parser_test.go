package notes

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestParse_Title(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback string
		want     string
	}{
		{"first h1", "# Groceries\n\nmilk", "list.md", "Groceries"},
		{"trims heading", "#   Spaced Out   \n", "x.md", "Spaced Out"},
		{"leading blank lines", "\n\n\n# Late Title\nbody", "x.md", "Late Title"},
		{"h1 after body", "intro text\n\n# Found Later\n", "x.md", "Found Later"},
		{"h2 is not a title", "## Section\ntext", "weekly.md", "weekly"},
		{"no space after marker", "#hashtag\n", "tagged.md", "tagged"},
		{"no heading", "just text", "plain.md", "plain"},
		{"empty input", "", "empty.md", "empty"},
		{"crlf", "# Windows\r\nline two\r\n", "w.md", "Windows"},
		{"uppercase extension", "", "LOUD.MD", "LOUD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw, tt.fallback, DefaultParseOptions())
			if got.Title != tt.want {
				t.Errorf("expected title %q, got %q", tt.want, got.Title)
			}
		})
	}
}

func TestParse_Preview(t *testing.T) {
	raw := "# Title\n\n## Sub\nfirst line\nsecond line\n"
	got := Parse(raw, "n.md", DefaultParseOptions())
	if got.Preview != "first line second line" {
		t.Errorf("unexpected preview %q", got.Preview)
	}
}

func TestParse_PreviewKeepsInnerBlankLines(t *testing.T) {
	raw := "para one\n\npara two"
	got := Parse(raw, "n.md", DefaultParseOptions())
	if got.Preview != "para one  para two" {
		t.Errorf("unexpected preview %q", got.Preview)
	}
}

func TestParse_PreviewTruncation(t *testing.T) {
	opts := DefaultParseOptions()

	long := strings.Repeat("a", 400)
	got := Parse(long, "n.md", opts)
	if !strings.HasSuffix(got.Preview, Ellipsis) {
		t.Fatalf("expected ellipsis, got %q", got.Preview)
	}
	if n := utf8.RuneCountInString(got.Preview); n > opts.PreviewLength+len(Ellipsis) {
		t.Errorf("preview too long: %d", n)
	}

	exact := strings.Repeat("b", opts.PreviewLength)
	got = Parse(exact, "n.md", opts)
	if got.Preview != exact {
		t.Errorf("expected untouched preview at the bound, got %q", got.Preview)
	}

	short := "  short note  "
	got = Parse(short, "n.md", opts)
	if got.Preview != "short note" {
		t.Errorf("expected trimmed preview, got %q", got.Preview)
	}
}

func TestParse_PreviewCountsRunes(t *testing.T) {
	opts := ParseOptions{Extension: ".md", PreviewLength: 5}
	got := Parse("日本語のメモです", "n.md", opts)
	if got.Preview != "日本語のメ"+Ellipsis {
		t.Errorf("unexpected preview %q", got.Preview)
	}
}

func TestParse_ConfigurableBound(t *testing.T) {
	opts := ParseOptions{Extension: ".txt", PreviewLength: 10}
	got := Parse("0123456789abc", "todo.txt", opts)
	if got.Preview != "0123456789..." {
		t.Errorf("unexpected preview %q", got.Preview)
	}
	if got.Title != "todo" {
		t.Errorf("expected title from .txt fallback, got %q", got.Title)
	}
}

func TestParse_Frontmatter(t *testing.T) {
	raw := "---\ntags: [work, \"#urgent\"]\n---\n# Standup\nnotes here"
	got := Parse(raw, "s.md", DefaultParseOptions())

	if got.Title != "Standup" {
		t.Errorf("expected title Standup, got %q", got.Title)
	}
	if got.Preview != "notes here" {
		t.Errorf("frontmatter leaked into preview: %q", got.Preview)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "work" || got.Tags[1] != "urgent" {
		t.Errorf("unexpected tags %v", got.Tags)
	}
}

func TestParse_FrontmatterScalarTags(t *testing.T) {
	raw := "---\ntags: a, b\n---\nbody"
	got := Parse(raw, "s.md", DefaultParseOptions())
	if len(got.Tags) != 2 || got.Tags[0] != "a" || got.Tags[1] != "b" {
		t.Errorf("unexpected tags %v", got.Tags)
	}
}

func TestParse_UnterminatedFrontmatter(t *testing.T) {
	raw := "---\nnot closed"
	got := Parse(raw, "s.md", DefaultParseOptions())
	if got.Preview != "--- not closed" {
		t.Errorf("unexpected preview %q", got.Preview)
	}
	if got.Tags != nil {
		t.Errorf("expected no tags, got %v", got.Tags)
	}
}

func TestTrimExtension(t *testing.T) {
	tests := []struct{ in, ext, want string }{
		{"note.md", ".md", "note"},
		{"note.MD", ".md", "note"},
		{"note.md.bak", ".md", "note.md.bak"},
		{"md", ".md", "md"},
		{"Projects/todo.md", ".md", "Projects/todo"},
		{"keep", "", "keep"},
	}
	for _, tt := range tests {
		if got := TrimExtension(tt.in, tt.ext); got != tt.want {
			t.Errorf("TrimExtension(%q, %q) = %q, want %q", tt.in, tt.ext, got, tt.want)
		}
	}
}
