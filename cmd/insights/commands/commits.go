package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/repo-insights/internal/insights"
)

const (
	commitsCmdUse   = "commits <user>"
	commitsCmdShort = "List commits the user pushed recently, newest first"
)

// NewCommitsCommand creates the commits subcommand.
func NewCommitsCommand(global *GlobalOptions) *cobra.Command {
	var (
		days    int
		workers int
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   commitsCmdUse,
		Short: commitsCmdShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := global.client()
			if err != nil {
				return err
			}
			agg := insights.NewAggregator(client, client,
				insights.WithWindow(time.Duration(days)*24*time.Hour),
				insights.WithWorkers(workers),
			)
			records := agg.Recent(cmd.Context(), args[0])
			if page > 0 {
				records = insights.Page(records, page, perPage)
			}
			renderCommits(os.Stdout, records, time.Now())
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "how many days back to look")
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "pushes resolved concurrently")
	cmd.Flags().IntVar(&page, "page", 0, "show only this page (1-based)")
	cmd.Flags().IntVar(&perPage, "per-page", insights.DefaultPerPage, "page size when --page is set")

	return cmd
}
