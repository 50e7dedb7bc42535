package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/repo-insights/internal/filetree"
)

// NewTreeCommand creates the tree subcommand.
func NewTreeCommand(global *GlobalOptions) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "tree <owner/repo>",
		Short: "Print the file tree of the default branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := global.client()
			if err != nil {
				return err
			}
			entries, err := client.RepoTree(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderTree(os.Stdout, filetree.Build(filetree.FromTree(entries)), depth)
			return nil
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "maximum depth to print, 0 for all")

	return cmd
}
