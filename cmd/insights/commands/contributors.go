package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repo-insights/internal/insights"
)

// NewContributorsCommand creates the contributors subcommand.
func NewContributorsCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "contributors <org>",
		Short: "Count distinct contributors across an organization's repositories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := global.client()
			if err != nil {
				return err
			}
			n, err := insights.CountContributors(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d contributors\n", args[0], n)
			return nil
		},
	}
}
