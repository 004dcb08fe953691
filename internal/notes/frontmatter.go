package notes

import (
	"strings"

	"gopkg.in/yaml.v3"
)

type noteFrontmatter struct {
	Tags yaml.Node `yaml:"tags"`
}

// splitFrontmatter removes a leading YAML block and returns the body and any
// tags it declares. Content without a well-formed block is returned as is.
func splitFrontmatter(content string) (string, []string) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return content, nil
	}

	var fmEnd int
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fmEnd = i
			break
		}
	}
	if fmEnd == 0 {
		return content, nil
	}

	var fm noteFrontmatter
	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:fmEnd], "\n")), &fm); err != nil {
		return content, nil
	}

	return strings.Join(lines[fmEnd+1:], "\n"), decodeTags(&fm.Tags)
}

// decodeTags accepts both `tags: [a, b]` and `tags: a, b`.
func decodeTags(node *yaml.Node) []string {
	var tags []string
	switch node.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return nil
		}
		tags = list
	case yaml.ScalarNode:
		tags = strings.Split(node.Value, ",")
	default:
		return nil
	}

	var result []string
	for _, t := range tags {
		t = strings.TrimPrefix(strings.TrimSpace(t), "#")
		if t != "" {
			result = append(result, t)
		}
	}
	return result
}
