package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vaultwidget/internal/apperr"
	"vaultwidget/internal/config"
	"vaultwidget/internal/deeplink"
	"vaultwidget/internal/logs"
	"vaultwidget/internal/prefs"
)

func TestMain(m *testing.M) {
	logs.Silence()
	os.Exit(m.Run())
}

// harness runs commands against one in-memory store and a recording opener.
type harness struct {
	t      *testing.T
	store  *prefs.MemoryStore
	opened []string
	fail   bool
	base   string
	vault  string
	runTUI func(ctx context.Context, env *Env) error
	isTerm bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("VAULTWIDGET_ALLOWED_ROOTS", base)
	for _, key := range []string{"VAULTWIDGET_MAX_NOTES", "VAULTWIDGET_DEBUG", "VAULTWIDGET_EXTENSION", "VAULTWIDGET_SCHEME"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	h := &harness{
		t:     t,
		store: prefs.NewMemoryStore(prefs.DefaultSlots),
		base:  base,
		vault: filepath.Join(base, "Vault"),
	}
	if err := os.MkdirAll(h.vault, 0755); err != nil {
		t.Fatal(err)
	}
	return h
}

func (h *harness) writeNote(rel, content string, age time.Duration) string {
	h.t.Helper()
	path := filepath.Join(h.vault, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		h.t.Fatal(err)
	}
	mtime := time.Now().Add(-age)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		h.t.Fatal(err)
	}
	return path
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	deps := Deps{
		Stdout: &out,
		Stderr: &errOut,
		Opener: deeplink.OpenerFunc(func(_ context.Context, uri string) error {
			h.opened = append(h.opened, uri)
			if h.fail {
				return errors.New("no handler")
			}
			return nil
		}),
		OpenStore: func(*config.Config) (prefs.Store, error) {
			return h.store, nil
		},
		IsTerminal: func() bool { return h.isTerm },
		RunTUI:     h.runTUI,
	}

	root := NewRootCommand(deps)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	if err != nil {
		h.t.Fatalf("%v failed: %v", args, err)
	}
	return out
}

func TestScan_ListsNewestFirst(t *testing.T) {
	h := newHarness(t)
	h.writeNote("old.md", "# Old\nold body", 3*time.Hour)
	h.writeNote("Projects/new.md", "# New\nnew body", time.Hour)
	h.writeNote("mid.md", "# Mid\nmid body", 2*time.Hour)

	out := h.mustRun("scan", "--vault", h.vault)

	iNew, iMid, iOld := strings.Index(out, "New"), strings.Index(out, "Mid"), strings.Index(out, "Old")
	if iNew < 0 || iMid < 0 || iOld < 0 {
		t.Fatalf("expected all notes listed, got:\n%s", out)
	}
	if iNew >= iMid || iMid >= iOld {
		t.Errorf("expected newest first, got:\n%s", out)
	}
	if !strings.Contains(out, "(Vault/new.md)") {
		t.Errorf("expected folder label and file name, got:\n%s", out)
	}
}

func TestScan_MaxAndFilter(t *testing.T) {
	h := newHarness(t)
	h.writeNote("alpha.md", "# Alpha", time.Hour)
	h.writeNote("beta.md", "# Beta", 2*time.Hour)
	h.writeNote("gamma.md", "# Gamma", 3*time.Hour)

	out := h.mustRun("scan", "--vault", h.vault, "--max", "2")
	if strings.Contains(out, "Gamma") || !strings.Contains(out, "Beta") {
		t.Errorf("expected two newest notes, got:\n%s", out)
	}

	out = h.mustRun("scan", "--vault", h.vault, "--filter", "gam")
	if !strings.Contains(out, "Gamma") || strings.Contains(out, "Alpha") {
		t.Errorf("expected only Gamma, got:\n%s", out)
	}
}

func TestScan_JSON(t *testing.T) {
	h := newHarness(t)
	h.writeNote("Projects/todo.md", "---\ntags: [work]\n---\n# Todo\nship it", time.Hour)

	out := h.mustRun("scan", "--vault", h.vault, "--json")

	var got []noteJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 note, got %d", len(got))
	}
	if got[0].Link != "obsidian://open?vault=Vault&file=Projects%2Ftodo" {
		t.Errorf("unexpected link %q", got[0].Link)
	}
	if len(got[0].Tags) != 1 || got[0].Tags[0] != "work" {
		t.Errorf("unexpected tags %v", got[0].Tags)
	}
}

func TestScan_UnconfiguredVault(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("scan")
	if !strings.Contains(out, "No vault configured.") {
		t.Errorf("expected a hint, got:\n%s", out)
	}

	out = h.mustRun("scan", "--vault", filepath.Join(h.base, "missing"))
	if !strings.Contains(out, "No notes found.") {
		t.Errorf("expected empty listing, got:\n%s", out)
	}
}

func TestRoot_PlainListWithoutTerminal(t *testing.T) {
	h := newHarness(t)
	h.writeNote("a.md", "# Apple", time.Hour)
	called := false
	h.runTUI = func(context.Context, *Env) error {
		called = true
		return nil
	}

	out := h.mustRun("--vault", h.vault)
	if called || !strings.Contains(out, "Apple") {
		t.Errorf("expected plain list, tui called=%v, out:\n%s", called, out)
	}

	h.isTerm = true
	h.mustRun("--vault", h.vault)
	if !called {
		t.Error("expected TUI on a terminal")
	}
}

func TestResolveAndOpen(t *testing.T) {
	h := newHarness(t)
	note := h.writeNote("Projects/todo.md", "# Todo", time.Hour)
	h.mustRun("vault", "set", h.vault)

	out := h.mustRun("resolve", note)
	for _, want := range []string{"Vault: Vault", "File:  Projects/todo", "obsidian://open?vault=Vault&file=Projects%2Ftodo"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}

	out = h.mustRun("open", note, "--print")
	if strings.TrimSpace(out) != "obsidian://open?vault=Vault&file=Projects%2Ftodo" {
		t.Errorf("unexpected printed link %q", out)
	}
	if len(h.opened) != 0 {
		t.Errorf("--print must not launch, got %v", h.opened)
	}

	h.mustRun("open", note)
	if len(h.opened) != 1 || h.opened[0] != "obsidian://open?vault=Vault&file=Projects%2Ftodo" {
		t.Errorf("unexpected launches %v", h.opened)
	}
}

func TestOpen_LaunchFailure(t *testing.T) {
	h := newHarness(t)
	h.fail = true

	_, err := h.run("home")
	if !errors.Is(err, apperr.ErrLaunch) {
		t.Errorf("expected ErrLaunch, got %v", err)
	}
	want := []string{"obsidian://", deeplink.FallbackStoreURI("md.obsidian"), deeplink.FallbackWebURI("md.obsidian")}
	if strings.Join(h.opened, " ") != strings.Join(want, " ") {
		t.Errorf("expected %v, got %v", want, h.opened)
	}
}

func TestActions_Print(t *testing.T) {
	h := newHarness(t)
	h.mustRun("vault", "set", h.vault)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"daily"}, "obsidian://daily?vault=Vault"},
		{[]string{"new"}, "obsidian://new?vault=Vault"},
		{[]string{"new", "Meeting notes"}, "obsidian://new?vault=Vault&name=Meeting%20notes"},
		{[]string{"search", "tag:work", "urgent"}, "obsidian://search?vault=Vault&query=tag%3Awork%20urgent"},
		{[]string{"home"}, "obsidian://"},
		{[]string{"vault", "open"}, "obsidian://open?vault=Vault"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out := h.mustRun(append(tt.args, "--print")...)
			if strings.TrimSpace(out) != tt.want {
				t.Errorf("expected %q, got %q", tt.want, out)
			}
		})
	}
}

func TestNew_DatedUsesDailyFolder(t *testing.T) {
	h := newHarness(t)
	h.mustRun("daily-folder", "set", "Journal")

	out := h.mustRun("new", "--dated", "--print", "--vault", h.vault)
	want := "name=" + deeplink.Encode("Journal/"+deeplink.DailyNoteName(time.Now()))
	if !strings.Contains(out, want) {
		t.Errorf("expected %q in %q", want, out)
	}
}

func TestVault_SetShowClear(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("vault", "show")
	if !strings.Contains(out, "No vault configured (name: MyVault)") {
		t.Errorf("unexpected output:\n%s", out)
	}

	h.mustRun("vault", "set", "/tree/primary:Documents/Notes")
	out = h.mustRun("vault", "show")
	for _, want := range []string{"Kind: tree", "Name: Notes", "Path: /storage/emulated/0/Documents/Notes"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}

	h.mustRun("vault", "clear")
	root, _ := h.store.VaultRoot(context.Background())
	if !root.IsZero() {
		t.Errorf("expected cleared root, got %#v", root)
	}
}

func TestDailyFolder(t *testing.T) {
	h := newHarness(t)

	if out := h.mustRun("daily-folder", "show"); strings.TrimSpace(out) != prefs.DefaultDailyFolder {
		t.Errorf("expected default folder, got %q", out)
	}

	h.mustRun("vault", "set", h.vault)
	h.mustRun("daily-folder", "set", filepath.Join(h.vault, "Journal", "2024"))
	if out := h.mustRun("daily-folder", "show"); strings.TrimSpace(out) != "Journal/2024" {
		t.Errorf("expected vault-relative folder, got %q", out)
	}

	if _, err := h.run("daily-folder", "set", " "); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestShortcuts(t *testing.T) {
	h := newHarness(t)
	note := h.writeNote("Inbox.md", "# Inbox", time.Hour)
	h.mustRun("vault", "set", h.vault)

	out := h.mustRun("shortcut", "list")
	if strings.Count(out, prefs.Unset) != prefs.DefaultSlots {
		t.Errorf("expected %d unset slots, got:\n%s", prefs.DefaultSlots, out)
	}

	h.mustRun("shortcut", "set", "2", note)
	out = h.mustRun("shortcut", "list")
	if !strings.Contains(out, "2. Inbox  "+note) || !strings.Contains(out, "1. "+prefs.Unset) {
		t.Errorf("unexpected listing:\n%s", out)
	}

	out = h.mustRun("shortcut", "open", "2", "--print")
	if strings.TrimSpace(out) != "obsidian://open?vault=Vault&file=Inbox" {
		t.Errorf("unexpected link %q", out)
	}

	if _, err := h.run("shortcut", "open", "1"); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for an empty slot, got %v", err)
	}
	for _, slot := range []string{"0", "3", "x"} {
		if _, err := h.run("shortcut", "set", slot, note); !errors.Is(err, apperr.ErrInvalidInput) {
			t.Errorf("slot %s: expected ErrInvalidInput, got %v", slot, err)
		}
	}

	h.mustRun("shortcut", "clear", "2")
	if sc, _ := h.store.Shortcut(context.Background(), 1); sc.IsConfigured() {
		t.Errorf("expected slot 2 cleared, got %+v", sc)
	}
}

func TestNote_ShowsSummaryAndOutline(t *testing.T) {
	h := newHarness(t)
	note := h.writeNote("plan.md", "# Plan\nIntro text\n## Goals\n### Q1", time.Hour)

	out := h.mustRun("note", note, "--outline")
	for _, want := range []string{"Title:    Plan", "Folder:   Vault", "Intro text", "- Plan", "  - Goals", "    - Q1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}

	if _, err := h.run("note", filepath.Join(h.vault, "missing.md")); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
