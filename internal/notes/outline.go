package notes

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of a note outline
type Heading struct {
	Level int
	Text  string
}

// Outline lists the headings of a markdown document in order. Frontmatter is
// skipped so its keys are not mistaken for setext headings.
func Outline(raw string) []Heading {
	body, _ := splitFrontmatter(raw)
	source := []byte(body)

	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var headings []Heading
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindHeading {
			return ast.WalkContinue, nil
		}
		heading := n.(*ast.Heading)
		headings = append(headings, Heading{
			Level: heading.Level,
			Text:  string(n.Text(source)),
		})
		return ast.WalkSkipChildren, nil
	})

	return headings
}
