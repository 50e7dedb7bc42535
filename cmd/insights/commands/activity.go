package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/repo-insights/internal/insights"
)

// NewActivityCommand creates the activity subcommand.
func NewActivityCommand(global *GlobalOptions) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "activity <user>",
		Short: "Show commits per day for the last seven days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := global.client()
			if err != nil {
				return err
			}
			agg := insights.NewAggregator(client, client, insights.WithWorkers(workers))
			records := agg.Recent(cmd.Context(), args[0])
			renderActivity(os.Stdout, insights.Activity(records, time.Now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "pushes resolved concurrently")

	return cmd
}
