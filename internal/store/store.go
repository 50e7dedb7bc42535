package store

//go:generate go run go.uber.org/mock/mockgen -destination store_mock.gen.go -package store . Store

import (
	"context"
	"time"
)

// Store is the persistence interface. Sync workers and the server depend only on this interface.
// Only main and this package use *pgxpool.Pool.
type Store interface {
	InsertCommit(ctx context.Context, row *CommitRow) (inserted bool, err error)
	StoredCommits(ctx context.Context, login string, since time.Time) ([]CommitRow, error)
	CommitsSeenCount(ctx context.Context) (int64, error)
	MarkRepoAnalyzed(ctx context.Context, userID, repo string) (inserted bool, err error)
	AnalyzedRepoCount(ctx context.Context, userID string) (int64, error)
	Ping(ctx context.Context) error
}

// CommitRow is the row shape for user_commits.
type CommitRow struct {
	Login       string
	Sha         string
	Repo        string
	Message     string
	CommittedAt time.Time
}
