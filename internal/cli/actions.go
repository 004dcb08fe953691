package cli

import (
	"path"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vaultwidget/internal/deeplink"
)

func newNewCommand() *cobra.Command {
	var dated bool
	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a note in the vault",
		Long: `Create a note in the vault. Without a name the note application picks one.
With --dated the note is named after today's date inside the daily folder.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			ctx := cmd.Context()

			name, err := env.VaultName(ctx)
			if err != nil {
				return err
			}

			var note string
			if len(args) == 1 {
				note = strings.TrimSpace(args[0])
			}
			if dated && note == "" {
				folder, err := env.Store.DailyFolder(ctx)
				if err != nil {
					return err
				}
				note = path.Join(folder, deeplink.DailyNoteName(time.Now()))
			}
			return env.Dispatch(ctx, env.Links.NewNote(name, note))
		},
	}
	cmd.Flags().BoolVar(&dated, "dated", false, "name the note after today's date inside the daily folder")
	return cmd
}

func newDailyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Open today's daily note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := envFrom(cmd)
			name, err := env.VaultName(cmd.Context())
			if err != nil {
				return err
			}
			return env.Dispatch(cmd.Context(), env.Links.DailyNote(name))
		},
	}
}

func newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query...]",
		Short: "Open the search pane of the note application",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			name, err := env.VaultName(cmd.Context())
			if err != nil {
				return err
			}
			return env.Dispatch(cmd.Context(), env.Links.Search(name, strings.Join(args, " ")))
		},
	}
}

func newHomeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Open the note application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := envFrom(cmd)
			return env.Dispatch(cmd.Context(), env.Links.AppHome())
		},
	}
}
