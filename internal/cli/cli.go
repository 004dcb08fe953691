// Package cli is the command line of the widget: it lists notes, resolves
// them into deep links and edits the stored preferences.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"golang.org/x/term"

	"vaultwidget/internal/apperr"
	"vaultwidget/internal/config"
	"vaultwidget/internal/deeplink"
	"vaultwidget/internal/prefs"
	"vaultwidget/internal/scanner"
	"vaultwidget/internal/vault"
)

// Version is set via -ldflags.
var Version = "dev"

// Deps are the host services the commands run against.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Opener deeplink.Opener
	// OpenStore opens the preference store named by the loaded config.
	OpenStore func(cfg *config.Config) (prefs.Store, error)
	// IsTerminal reports whether the bare command may start the TUI.
	IsTerminal func() bool
	// RunTUI is nil when no interactive front end is linked in.
	RunTUI func(ctx context.Context, env *Env) error
}

// DefaultDeps wires the real terminal, desktop opener and SQLite store.
func DefaultDeps() Deps {
	return Deps{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Opener: deeplink.ExecOpener{},
		OpenStore: func(cfg *config.Config) (prefs.Store, error) {
			return prefs.OpenSQLite(cfg.DBPath, cfg.ShortcutSlots)
		},
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

// Execute runs the command line with args and returns the exit code.
func Execute(ctx context.Context, args []string, deps Deps) int {
	root := NewRootCommand(deps)
	root.SetArgs(args)
	if err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		return 1
	}
	return 0
}

// Env is what a command sees once config and preferences are loaded.
type Env struct {
	Config   *config.Config
	Store    prefs.Store
	Scanner  *scanner.Scanner
	Links    deeplink.Builder
	Launcher *deeplink.Launcher
	Out      io.Writer

	// RootOverride replaces the stored vault root for this run.
	RootOverride vault.Root
	// PrintOnly prints links instead of launching them.
	PrintOnly bool
}

func newEnv(cfg *config.Config, store prefs.Store, deps Deps) *Env {
	return &Env{
		Config: cfg,
		Store:  store,
		Scanner: scanner.New(scanner.Options{
			Extension:     cfg.Extension,
			PreviewLength: cfg.PreviewLength,
			AllowedRoots:  cfg.AllowedRoots,
			Workers:       cfg.Workers,
			Tree:          scanner.DirTree{Volumes: cfg.TreeVolumes},
		}),
		Links:    deeplink.NewBuilder(cfg.Scheme),
		Launcher: deeplink.NewLauncher(deps.Opener, cfg.AppPackage),
		Out:      deps.Stdout,
	}
}

// VaultRoot is the override when one was given, else the stored root.
func (e *Env) VaultRoot(ctx context.Context) (vault.Root, error) {
	if e.RootOverride != nil {
		return e.RootOverride, nil
	}
	return e.Store.VaultRoot(ctx)
}

// VaultName labels the active vault.
func (e *Env) VaultName(ctx context.Context) (string, error) {
	root, err := e.VaultRoot(ctx)
	if err != nil {
		return "", err
	}
	return vault.Name(root), nil
}

// NoteLink is the open link for an absolute note path in the active vault.
func (e *Env) NoteLink(ctx context.Context, notePath string) (string, error) {
	root, err := e.VaultRoot(ctx)
	if err != nil {
		return "", err
	}
	id := vault.RelativeIdentifier(notePath, root, e.Config.Extension)
	return e.Links.OpenNote(vault.Name(root), id), nil
}

// Dispatch prints or launches uri.
func (e *Env) Dispatch(ctx context.Context, uri string) error {
	if e.PrintOnly {
		_, err := fmt.Fprintln(e.Out, uri)
		return err
	}
	if !e.Launcher.Launch(ctx, uri) {
		return apperr.New(apperr.ErrLaunch, "open link", uri, nil)
	}
	return nil
}
