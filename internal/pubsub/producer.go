package pubsub

import (
	"context"
	"log/slog"
	"time"

	"github.com/repo-insights/internal/insights"
)

// RecentCommits aggregates a user's recent commits (e.g. insights.Aggregator).
type RecentCommits interface {
	Recent(ctx context.Context, user string) []insights.CommitRecord
}

// Producer polls a user's recent commits and enqueues the ones not sent yet.
type Producer struct {
	source       RecentCommits
	login        string
	jobs         chan<- CommitJob
	pollInterval time.Duration
	sent         map[string]struct{}
	log          *slog.Logger
}

// NewProducer returns a producer that sends jobs for login to the given channel.
// pollInterval is the delay between aggregations (e.g. from POLL_INTERVAL_SEC).
func NewProducer(source RecentCommits, login string, jobs chan<- CommitJob, pollInterval time.Duration) *Producer {
	return &Producer{
		source:       source,
		login:        login,
		jobs:         jobs,
		pollInterval: pollInterval,
		sent:         make(map[string]struct{}),
		log:          slog.Default(),
	}
}

// Run polls until ctx is cancelled. Uses bounded channel for backpressure.
func (p *Producer) Run(ctx context.Context) {
	p.log.Info("producer running", "login", p.login, "poll_interval", p.pollInterval)
	for {
		if !p.poll(ctx) {
			p.log.Info("producer stopping")
			return
		}
		select {
		case <-ctx.Done():
			p.log.Info("producer stopping")
			return
		case <-time.After(p.pollInterval):
		}
	}
}

// poll enqueues unsent records. The sent set only keeps shas still in the window.
func (p *Producer) poll(ctx context.Context) bool {
	records := p.source.Recent(ctx, p.login)
	current := make(map[string]struct{}, len(records))
	enqueued := 0
	for _, rec := range records {
		current[rec.SHA] = struct{}{}
		if _, ok := p.sent[rec.SHA]; ok {
			continue
		}
		select {
		case p.jobs <- CommitJob{Login: p.login, Record: rec}:
			enqueued++
		case <-ctx.Done():
			return false
		}
	}
	p.sent = current
	if enqueued > 0 {
		p.log.Info("recent commits enqueued", "login", p.login, "count", enqueued, "window_total", len(records))
	}
	return true
}
