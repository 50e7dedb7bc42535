// Package main provides the entry point for the insights CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/repo-insights/cmd/insights/commands"
)

func main() {
	var global commands.GlobalOptions

	rootCmd := &cobra.Command{
		Use:   "insights",
		Short: "Recent commits, activity and file trees from the GitHub API",
		Long: `insights reads a user's GitHub activity and repository layout.

Commands:
  commits       Commits pushed in the last days, newest first
  activity      Daily commit counts for the last seven days
  tree          Repository file tree of the default branch
  contributors  Distinct contributors across an organization`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			global.SetupLogging()
		},
	}
	global.Bind(rootCmd.PersistentFlags())

	rootCmd.AddCommand(commands.NewCommitsCommand(&global))
	rootCmd.AddCommand(commands.NewActivityCommand(&global))
	rootCmd.AddCommand(commands.NewTreeCommand(&global))
	rootCmd.AddCommand(commands.NewContributorsCommand(&global))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
