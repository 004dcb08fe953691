package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vaultwidget/internal/apperr"
	"vaultwidget/internal/prefs"
	"vaultwidget/internal/vault"
)

func newVaultCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Show or change the stored vault root",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the vault root and its name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := envFrom(cmd)
			root, err := env.VaultRoot(cmd.Context())
			if err != nil {
				return err
			}
			if root.IsZero() {
				fmt.Fprintf(env.Out, "No vault configured (name: %s)\n", vault.Name(root))
				return nil
			}
			fmt.Fprintf(env.Out, "Kind: %s\n", root.Kind())
			fmt.Fprintf(env.Out, "Root: %s\n", root.Value())
			fmt.Fprintf(env.Out, "Name: %s\n", vault.Name(root))
			if tree, ok := root.(vault.TreeRoot); ok {
				fmt.Fprintf(env.Out, "Path: %s\n", tree.FilesystemPath())
			}
			return nil
		},
	}

	var tree bool
	set := &cobra.Command{
		Use:   "set <path-or-uri>",
		Short: "Store the vault root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			value := strings.TrimSpace(args[0])
			if value == "" {
				return apperr.Invalid("set vault", "vault root is blank")
			}

			var root vault.Root = vault.FilesystemRoot{Path: absPath(value)}
			if tree || strings.HasPrefix(value, "content://") || strings.HasPrefix(value, vault.TreePrefix) {
				root = vault.TreeRoot{URI: value}
			}
			if err := env.Store.SetVaultRoot(cmd.Context(), root); err != nil {
				return err
			}
			fmt.Fprintf(env.Out, "Vault set to %s (%s)\n", root.Value(), vault.Name(root))
			return nil
		},
	}
	set.Flags().BoolVar(&tree, "tree", false, "treat the argument as a document-tree URI")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget the stored vault root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := envFrom(cmd)
			if err := env.Store.SetVaultRoot(cmd.Context(), vault.FilesystemRoot{}); err != nil {
				return err
			}
			fmt.Fprintln(env.Out, "Vault cleared")
			return nil
		},
	}

	open := &cobra.Command{
		Use:   "open",
		Short: "Open the vault in the note application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := envFrom(cmd)
			name, err := env.VaultName(cmd.Context())
			if err != nil {
				return err
			}
			return env.Dispatch(cmd.Context(), env.Links.OpenVault(name))
		},
	}

	cmd.AddCommand(show, set, clearCmd, open)
	return cmd
}

func newDailyFolderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily-folder",
		Short: "Show or change the daily-note folder",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the daily-note folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := envFrom(cmd)
			folder, err := env.Store.DailyFolder(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(env.Out, folder)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <folder>",
		Short: "Store the daily-note folder",
		Long: `Store the daily-note folder. An absolute path inside the vault is stored
relative to the vault root.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			ctx := cmd.Context()

			folder := strings.TrimSpace(args[0])
			if filepath.IsAbs(folder) {
				root, err := env.VaultRoot(ctx)
				if err != nil {
					return err
				}
				// The extension is empty so folder names keep any dots.
				folder = vault.RelativeIdentifier(folder, root, "")
			}
			if err := env.Store.SetDailyFolder(ctx, folder); err != nil {
				return err
			}
			stored, err := env.Store.DailyFolder(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(env.Out, "Daily folder set to %s\n", stored)
			return nil
		},
	}

	cmd.AddCommand(show, set)
	return cmd
}

func newShortcutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shortcut",
		Short: "Manage the pinned note slots",
		Long:  "Manage the pinned note slots. Slots are numbered from 1.",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := envFrom(cmd)
			all, err := env.Store.Shortcuts(cmd.Context())
			if err != nil {
				return err
			}
			for i, sc := range all {
				title := sc.DisplayTitle(env.Config.Extension)
				if sc.IsConfigured() {
					fmt.Fprintf(env.Out, "%d. %s  %s\n", i+1, title, sc.TargetPath)
				} else {
					fmt.Fprintf(env.Out, "%d. %s\n", i+1, title)
				}
			}
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <slot> <path>",
		Short: "Pin a note to a slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			target := absPath(args[1])
			if target == "" {
				return apperr.Invalid("set shortcut", "note path is blank")
			}
			sc := prefs.Shortcut{TargetPath: target}
			if err := env.Store.SetShortcut(cmd.Context(), slot, sc); err != nil {
				return err
			}
			fmt.Fprintf(env.Out, "Slot %d: %s\n", slot+1, sc.DisplayTitle(env.Config.Extension))
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear <slot>",
		Short: "Empty a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			if err := env.Store.SetShortcut(cmd.Context(), slot, prefs.Shortcut{}); err != nil {
				return err
			}
			fmt.Fprintf(env.Out, "Slot %d: %s\n", slot+1, prefs.Unset)
			return nil
		},
	}

	open := &cobra.Command{
		Use:   "open <slot>",
		Short: "Open the note pinned to a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			ctx := cmd.Context()

			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			sc, err := env.Store.Shortcut(ctx, slot)
			if err != nil {
				return err
			}
			if !sc.IsConfigured() {
				return apperr.Invalid("open shortcut", "slot %d is not configured", slot+1)
			}
			uri, err := env.NoteLink(ctx, sc.TargetPath)
			if err != nil {
				return err
			}
			return env.Dispatch(ctx, uri)
		},
	}

	cmd.AddCommand(list, set, clearCmd, open)
	return cmd
}
