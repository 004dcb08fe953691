package notes

import "testing"

func TestOutline(t *testing.T) {
	raw := "---\ntitle: x\n---\n# Top\n\ntext\n\n## Middle\n\n```\n# not a heading\n```\n\n### Bottom\n"
	got := Outline(raw)

	want := []Heading{{1, "Top"}, {2, "Middle"}, {3, "Bottom"}}
	if len(got) != len(want) {
		t.Fatalf("expected %d headings, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestOutline_Empty(t *testing.T) {
	if got := Outline(""); len(got) != 0 {
		t.Errorf("expected no headings, got %v", got)
	}
}
