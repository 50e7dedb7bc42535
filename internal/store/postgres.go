package store

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// Postgres implements Store using PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Store backed by the given pool. Caller must call Close on the pool when done.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the tables when they do not exist yet.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// InsertCommit inserts a commit seen for a login. Returns (true, nil) if inserted, (false, nil) if already stored.
func (p *Postgres) InsertCommit(ctx context.Context, row *CommitRow) (bool, error) {
	cmd, err := p.pool.Exec(ctx, `
		INSERT INTO user_commits (login, sha, repo, message, committed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (login, sha) DO NOTHING
	`, row.Login, row.Sha, row.Repo, row.Message, row.CommittedAt)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// StoredCommits returns the commits stored for login committed at or after since, newest first.
func (p *Postgres) StoredCommits(ctx context.Context, login string, since time.Time) ([]CommitRow, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT login, sha, repo, message, committed_at
		FROM user_commits
		WHERE login = $1 AND committed_at >= $2
		ORDER BY committed_at DESC
	`, login, since)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[CommitRow])
}

// CommitsSeenCount returns the count of rows in user_commits.
func (p *Postgres) CommitsSeenCount(ctx context.Context) (int64, error) {
	var n int64
	err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM user_commits`).Scan(&n)
	return n, err
}

// MarkRepoAnalyzed records that userID opened repo. Returns (false, nil) when it was already recorded.
func (p *Postgres) MarkRepoAnalyzed(ctx context.Context, userID, repo string) (bool, error) {
	cmd, err := p.pool.Exec(ctx, `
		INSERT INTO analyzed_repos (user_id, repo)
		VALUES ($1, $2)
		ON CONFLICT (user_id, repo) DO NOTHING
	`, userID, repo)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// AnalyzedRepoCount returns how many distinct repos userID has opened.
func (p *Postgres) AnalyzedRepoCount(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM analyzed_repos WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

// Ping checks the database connection.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}
