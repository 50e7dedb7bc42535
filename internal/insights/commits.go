// Package insights derives dashboard data from a user's GitHub activity:
// recent commits, daily commit activity and org contributor counts.
package insights

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/repo-insights/internal/github"
)

// DefaultWindow is how far back push events are considered.
const DefaultWindow = 7 * 24 * time.Hour

// CommitRecord is one commit of the recent activity list. SHA is unique within a result.
type CommitRecord struct {
	SHA     string    `json:"sha"`
	Message string    `json:"message"`
	Repo    string    `json:"repo"`
	Date    time.Time `json:"date"`
}

// Aggregator resolves a user's recent push events into commit records.
type Aggregator struct {
	events  github.EventsFetcher
	commits github.CommitFetcher
	window  time.Duration
	workers int
	now     func() time.Time
	metrics *Metrics
	log     *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithWindow overrides DefaultWindow.
func WithWindow(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.window = d
		}
	}
}

// WithWorkers bounds how many pushes are resolved at once. 1 resolves them one after another.
func WithWorkers(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// WithMetrics records lookup outcomes.
func WithMetrics(m *Metrics) Option {
	return func(a *Aggregator) { a.metrics = m }
}

// NewAggregator returns an aggregator reading events and commits from the given fetchers.
func NewAggregator(events github.EventsFetcher, commits github.CommitFetcher, opts ...Option) *Aggregator {
	a := &Aggregator{
		events:  events,
		commits: commits,
		window:  DefaultWindow,
		workers: 1,
		now:     time.Now,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// push is a qualifying push event waiting for its commits.
type push struct {
	repo       string
	before     string
	head       string
	receivedAt time.Time
}

// Recent returns the user's commits pushed within the window, newest first.
// It never fails: a missing user or a failed feed yields an empty result,
// and a push whose commits cannot be resolved contributes nothing.
func (a *Aggregator) Recent(ctx context.Context, user string) []CommitRecord {
	if user == "" {
		return []CommitRecord{}
	}
	cutoff := a.now().Add(-a.window)

	events, err := a.events.UserEvents(ctx, user)
	if err != nil {
		a.log.Error("fetch user events", "user", user, "err", err)
		a.metrics.feedFailed()
		return []CommitRecord{}
	}

	var pushes []push
	for _, e := range events {
		if e.CreatedAt.Before(cutoff) {
			continue
		}
		if e.Type != github.PushEventType || e.Push == nil || e.Push.Head == "" || e.Push.Before == "" {
			continue
		}
		pushes = append(pushes, push{repo: e.Repo, before: e.Push.Before, head: e.Push.Head, receivedAt: e.CreatedAt})
	}

	resolved := a.resolveAll(ctx, pushes)

	records := make([]CommitRecord, 0, len(pushes))
	seen := make(map[string]struct{})
	for _, batch := range resolved {
		for _, rec := range batch {
			if _, ok := seen[rec.SHA]; ok {
				continue
			}
			seen[rec.SHA] = struct{}{}
			records = append(records, rec)
		}
	}
	slices.SortStableFunc(records, func(x, y CommitRecord) int {
		return y.Date.Compare(x.Date)
	})
	a.log.Debug("recent commits aggregated", "user", user, "events", len(events), "pushes", len(pushes), "commits", len(records))
	return records
}

// resolveAll resolves every push, keeping results in feed order so the
// first-seen sha wins regardless of how many workers ran.
func (a *Aggregator) resolveAll(ctx context.Context, pushes []push) [][]CommitRecord {
	out := make([][]CommitRecord, len(pushes))
	if a.workers <= 1 || len(pushes) <= 1 {
		for i, p := range pushes {
			out[i] = a.resolve(ctx, p)
		}
		return out
	}

	pool, err := ants.NewPool(min(a.workers, len(pushes)))
	if err != nil {
		a.log.Warn("create lookup pool, resolving sequentially", "err", err)
		for i, p := range pushes {
			out[i] = a.resolve(ctx, p)
		}
		return out
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, p := range pushes {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			out[i] = a.resolve(ctx, p)
		}); err != nil {
			wg.Done()
			a.log.Warn("submit push lookup", "repo", p.repo, "head", p.head, "err", err)
		}
	}
	wg.Wait()
	return out
}

// resolve turns one push into records: a range compare, or the head commit alone when the compare fails.
func (a *Aggregator) resolve(ctx context.Context, p push) []CommitRecord {
	commits, err := a.commits.CompareCommits(ctx, p.repo, p.before, p.head)
	if err == nil {
		a.metrics.lookup(lookupCompare)
		records := make([]CommitRecord, 0, len(commits))
		for _, c := range commits {
			if c.SHA == "" || c.Message == "" {
				continue
			}
			date := c.AuthorDate
			if date.IsZero() {
				date = p.receivedAt
			}
			records = append(records, CommitRecord{SHA: c.SHA, Message: firstLine(c.Message), Repo: p.repo, Date: date})
		}
		return records
	}
	a.log.Debug("compare failed, falling back to head commit", "repo", p.repo, "before", p.before, "head", p.head, "err", err)

	c, err := a.commits.GetCommit(ctx, p.repo, p.head)
	if err != nil {
		a.log.Warn("get head commit", "repo", p.repo, "sha", p.head, "err", err)
		a.metrics.lookup(lookupFailed)
		return nil
	}
	a.metrics.lookup(lookupFallback)
	if c == nil || c.SHA == "" || c.Message == "" {
		return nil
	}
	return []CommitRecord{{SHA: c.SHA, Message: firstLine(c.Message), Repo: p.repo, Date: p.receivedAt}}
}

func firstLine(msg string) string {
	line, _, _ := strings.Cut(msg, "\n")
	return line
}
