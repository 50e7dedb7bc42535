// Package commands implements the insights CLI subcommands.
package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/repo-insights/internal/github"
)

// GlobalOptions are the flags shared by every subcommand.
type GlobalOptions struct {
	Token   string
	APIURL  string
	Timeout time.Duration
	Verbose bool
}

// Bind registers the shared flags. Token and API URL default to GH_TOKEN and GITHUB_API_URL.
func (o *GlobalOptions) Bind(flags *pflag.FlagSet) {
	flags.StringVar(&o.Token, "token", os.Getenv("GH_TOKEN"), "GitHub access token (default $GH_TOKEN)")
	flags.StringVar(&o.APIURL, "api-url", os.Getenv("GITHUB_API_URL"), "GitHub API base URL (default $GITHUB_API_URL or api.github.com)")
	flags.DurationVar(&o.Timeout, "timeout", github.DefaultTimeout, "per-request timeout")
	flags.BoolVarP(&o.Verbose, "verbose", "v", false, "verbose output")
}

// SetupLogging sends slog output to stderr, at debug level when verbose.
func (o *GlobalOptions) SetupLogging() {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func (o *GlobalOptions) client() (*github.Client, error) {
	return github.NewClient(o.Token, github.WithBaseURL(o.APIURL), github.WithTimeout(o.Timeout))
}
