package notes

import "testing"

func TestFilter(t *testing.T) {
	list := []Note{
		{Title: "Groceries", FileName: "shopping.md"},
		{Title: "Project plan", FileName: "plan.md"},
		{Title: "Meeting", FileName: "2024-03-09 standup.md"},
	}

	if got := Filter(list, ""); len(got) != len(list) {
		t.Errorf("empty query should keep all notes, got %d", len(got))
	}

	got := Filter(list, "plan")
	if len(got) == 0 || got[0].FileName != "plan.md" {
		t.Errorf("expected plan.md first, got %+v", got)
	}

	got = Filter(list, "standup")
	if len(got) != 1 || got[0].Title != "Meeting" {
		t.Errorf("expected match on file name, got %+v", got)
	}

	if got := Filter(list, "zzzz"); len(got) != 0 {
		t.Errorf("expected no matches, got %+v", got)
	}
}
