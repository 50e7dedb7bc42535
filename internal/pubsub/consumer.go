package pubsub

import (
	"context"
	"log/slog"

	"github.com/repo-insights/internal/store"
)

// Consumer persists commit jobs. Depends only on Store interface.
type Consumer struct {
	store store.Store
	jobs  <-chan CommitJob
	log   *slog.Logger
}

// NewConsumer returns a consumer that reads jobs from the given channel.
func NewConsumer(s store.Store, jobs <-chan CommitJob) *Consumer {
	return &Consumer{store: s, jobs: jobs, log: slog.Default()}
}

// Run starts one worker. Call N times for N workers.
func (c *Consumer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.log.Debug("consumer worker stopping")
			return
		case job, ok := <-c.jobs:
			if !ok {
				c.log.Debug("consumer jobs channel closed")
				return
			}
			c.process(ctx, job)
		}
	}
}

func (c *Consumer) process(ctx context.Context, job CommitJob) {
	row := &store.CommitRow{
		Login:       job.Login,
		Sha:         job.Record.SHA,
		Repo:        job.Record.Repo,
		Message:     job.Record.Message,
		CommittedAt: job.Record.Date,
	}
	inserted, err := c.store.InsertCommit(ctx, row)
	if err != nil {
		c.log.Warn("insert commit", "login", job.Login, "sha", row.Sha, "err", err)
		return
	}
	if inserted {
		c.log.Debug("commit saved", "login", job.Login, "repo", row.Repo, "sha", row.Sha)
	}
}
