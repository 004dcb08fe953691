package cli

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vaultwidget/internal/apperr"
	"vaultwidget/internal/config"
	"vaultwidget/internal/logs"
	"vaultwidget/internal/vault"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configFile string
	debug      bool
	vaultPath  string
	treeURI    string
	maxNotes   int
	print      bool
}

type envKey struct{}

// envFrom returns the Env installed by the root command's pre-run hook.
func envFrom(cmd *cobra.Command) *Env {
	env, _ := cmd.Context().Value(envKey{}).(*Env)
	return env
}

// NewRootCommand builds the command tree.
func NewRootCommand(deps Deps) *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "vaultwidget",
		Short: "Recent notes and quick actions for a markdown vault",
		Long: `vaultwidget lists the most recently modified notes of a markdown vault and
turns them into deep links for the note application.

Run without a command to open the interactive widget, or with --print to get
the note list and links as plain text.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(cmd.Context(), flags, deps)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), envKey{}, env))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			defer logs.Close()
			if env := envFrom(cmd); env != nil {
				return env.Store.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := envFrom(cmd)
			if deps.RunTUI != nil && !env.PrintOnly && deps.IsTerminal != nil && deps.IsTerminal() {
				logs.Logger.Info("starting widget in TUI mode")
				return deps.RunTUI(cmd.Context(), env)
			}
			return runList(cmd.Context(), env, "", false)
		},
	}
	root.SetOut(deps.Stdout)
	root.SetErr(deps.Stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/vaultwidget/config.json)")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.vaultPath, "vault", "", "vault directory for this run, instead of the stored one")
	pf.StringVar(&flags.treeURI, "tree", "", "vault document-tree URI for this run, instead of the stored one")
	pf.IntVar(&flags.maxNotes, "max", 0, "maximum number of notes to list")
	pf.BoolVar(&flags.print, "print", false, "print links instead of launching them")
	root.MarkFlagsMutuallyExclusive("vault", "tree")

	root.AddCommand(
		newScanCommand(),
		newNoteCommand(),
		newResolveCommand(),
		newOpenCommand(),
		newNewCommand(),
		newDailyCommand(),
		newSearchCommand(),
		newHomeCommand(),
		newVaultCommand(),
		newDailyFolderCommand(),
		newShortcutCommand(),
	)
	return root
}

// setup loads configuration, starts logging and opens the preference store.
func setup(_ context.Context, flags globalFlags, deps Deps) (*Env, error) {
	cfg, err := config.Load(config.CLIFlags{
		ConfigFile: flags.configFile,
		Debug:      flags.debug,
		MaxNotes:   flags.maxNotes,
	})
	if err != nil {
		return nil, err
	}

	if flags.configFile == "" {
		if err := config.EnsureConfigFile(""); err != nil {
			logs.Logger.Warn("could not create config file", "err", err)
		}
	}

	if cfg.LogDir != "" || cfg.Debug {
		if err := logs.Initialize(cfg.LogDir, cfg.Debug); err != nil {
			logs.Logger.Warn("could not initialize log file", "err", err)
		}
	}

	store, err := deps.OpenStore(cfg)
	if err != nil {
		return nil, err
	}

	env := newEnv(cfg, store, deps)
	env.PrintOnly = flags.print
	switch {
	case flags.vaultPath != "":
		env.RootOverride = vault.FilesystemRoot{Path: absPath(flags.vaultPath)}
	case flags.treeURI != "":
		env.RootOverride = vault.TreeRoot{URI: flags.treeURI}
	}
	return env, nil
}

// absPath makes a user-supplied path absolute, leaving it as is on failure.
func absPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// parseSlot converts a 1-based slot argument into a store index.
func parseSlot(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, apperr.Invalid("parse slot", "slot must be a number, got %q", arg)
	}
	return n - 1, nil
}
