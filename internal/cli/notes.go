package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"vaultwidget/internal/notes"
	"vaultwidget/internal/vault"
)

const timeFormat = "2006-01-02 15:04"

func newScanCommand() *cobra.Command {
	var (
		filter string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:     "scan",
		Aliases: []string{"ls", "list"},
		Short:   "List the most recently modified notes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), envFrom(cmd), filter, asJSON)
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "fuzzy filter on title and file name")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print notes as JSON")
	return cmd
}

// noteJSON is the machine-readable listing entry.
type noteJSON struct {
	Title        string   `json:"title"`
	FileName     string   `json:"file_name"`
	Preview      string   `json:"preview"`
	Vault        string   `json:"vault"`
	LastModified string   `json:"last_modified"`
	Path         string   `json:"path"`
	Tags         []string `json:"tags,omitempty"`
	Link         string   `json:"link"`
}

func runList(ctx context.Context, env *Env, filter string, asJSON bool) error {
	root, err := env.VaultRoot(ctx)
	if err != nil {
		return err
	}
	if root.IsZero() {
		fmt.Fprintln(env.Out, "No vault configured. Run 'vaultwidget vault set <dir>' or pass --vault.")
		return nil
	}
	list, err := env.Scanner.Scan(ctx, root, env.Config.MaxNotes)
	if err != nil {
		return err
	}
	list = notes.Filter(list, filter)

	name := vault.Name(root)
	if asJSON {
		out := make([]noteJSON, 0, len(list))
		for _, n := range list {
			out = append(out, noteJSON{
				Title:        n.Title,
				FileName:     n.FileName,
				Preview:      n.Preview,
				Vault:        n.VaultLabel,
				LastModified: n.LastModified.Format(timeFormat),
				Path:         n.SourceID,
				Tags:         n.Tags,
				Link:         env.Links.OpenNote(name, vault.RelativeIdentifier(n.SourceID, root, env.Config.Extension)),
			})
		}
		enc := json.NewEncoder(env.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(list) == 0 {
		fmt.Fprintln(env.Out, "No notes found.")
		return nil
	}
	for _, n := range list {
		printSummary(env.Out, n)
	}
	return nil
}

func printSummary(w io.Writer, n notes.Note) {
	fmt.Fprintf(w, "%s  %s  (%s/%s)\n", n.LastModified.Format(timeFormat), n.Title, n.VaultLabel, n.FileName)
	if n.Preview != "" {
		fmt.Fprintf(w, "    %s\n", n.Preview)
	}
}

func newNoteCommand() *cobra.Command {
	var outline bool
	cmd := &cobra.Command{
		Use:   "note <path>",
		Short: "Show the summary of one note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			path := absPath(args[0])

			n, err := env.Scanner.GetOne(cmd.Context(), path)
			if err != nil {
				return err
			}

			w := env.Out
			fmt.Fprintf(w, "Title:    %s\n", n.Title)
			fmt.Fprintf(w, "File:     %s\n", n.FileName)
			fmt.Fprintf(w, "Folder:   %s\n", n.VaultLabel)
			fmt.Fprintf(w, "Modified: %s\n", n.LastModified.Format(timeFormat))
			if len(n.Tags) > 0 {
				fmt.Fprintf(w, "Tags:     %s\n", strings.Join(n.Tags, ", "))
			}
			if n.Preview != "" {
				fmt.Fprintf(w, "\n%s\n", n.Preview)
			}

			if outline {
				raw, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				headings := notes.Outline(raw)
				if len(headings) > 0 {
					fmt.Fprintln(w, "\nOutline:")
				}
				for _, h := range headings {
					fmt.Fprintf(w, "%s- %s\n", strings.Repeat("  ", h.Level-1), h.Text)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&outline, "outline", false, "also print the heading outline")
	return cmd
}

func newResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>",
		Short: "Show the vault name, note identifier and link for a note path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			root, err := env.VaultRoot(cmd.Context())
			if err != nil {
				return err
			}

			path := absPath(args[0])
			name := vault.Name(root)
			id := vault.RelativeIdentifier(path, root, env.Config.Extension)

			fmt.Fprintf(env.Out, "Vault: %s\n", name)
			fmt.Fprintf(env.Out, "File:  %s\n", id)
			fmt.Fprintf(env.Out, "Link:  %s\n", env.Links.OpenNote(name, id))
			return nil
		},
	}
}

func newOpenCommand() *cobra.Command {
	var byPath bool
	cmd := &cobra.Command{
		Use:   "open <path>",
		Short: "Open a note in the note application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			path := absPath(args[0])

			if byPath {
				return env.Dispatch(cmd.Context(), env.Links.OpenPath(path))
			}
			uri, err := env.NoteLink(cmd.Context(), path)
			if err != nil {
				return err
			}
			return env.Dispatch(cmd.Context(), uri)
		},
	}
	cmd.Flags().BoolVar(&byPath, "by-path", false, "address the note by absolute path instead of vault and name")
	return cmd
}
