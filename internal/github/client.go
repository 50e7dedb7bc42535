package github

//go:generate go run go.uber.org/mock/mockgen -destination client_mock.gen.go -package github . EventsFetcher,CommitFetcher,ContributorsFetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// DefaultTimeout bounds a single API round trip.
const DefaultTimeout = 30 * time.Second

var (
	ErrNotFound    = errors.New("not found")
	ErrRateLimited = errors.New("rate limited")
	ErrInvalidRepo = errors.New("invalid repository name, expected owner/repo")
)

// EventsFetcher fetches a user's event feed (used by the commit aggregator).
type EventsFetcher interface {
	UserEvents(ctx context.Context, user string) ([]Event, error)
}

// CommitFetcher resolves pushes to commits (used by the commit aggregator).
type CommitFetcher interface {
	CompareCommits(ctx context.Context, repo, base, head string) ([]Commit, error)
	GetCommit(ctx context.Context, repo, sha string) (*Commit, error)
}

// ContributorsFetcher lists org repositories and their contributors.
type ContributorsFetcher interface {
	ListOrgRepos(ctx context.Context, org string, perPage, page int) ([]Repository, error)
	ListContributors(ctx context.Context, repo string, perPage int) ([]string, error)
}

// Client implements the fetcher interfaces on top of go-github.
// Every request carries the bearer credential the client was built with.
type Client struct {
	gh  *gh.Client
	log *slog.Logger
}

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL string
	timeout time.Duration
}

// WithBaseURL replaces the default API host (tests, GitHub Enterprise).
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// NewClient returns a GitHub API client. token is optional (unauthenticated calls are heavily rate limited).
func NewClient(token string, opts ...Option) (*Client, error) {
	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = o.timeout

	client := gh.NewClient(httpClient)
	if o.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(o.baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse base url: %w", err)
		}
		client.BaseURL = u
	}
	return &Client{gh: client, log: slog.Default()}, nil
}

// UserEvents fetches the first page of events performed by user.
func (c *Client) UserEvents(ctx context.Context, user string) ([]Event, error) {
	raw, _, err := c.gh.Activity.ListEventsPerformedByUser(ctx, user, false, nil)
	if err != nil {
		return nil, classify(err)
	}
	events := make([]Event, 0, len(raw))
	for _, e := range raw {
		ev := Event{
			ID:        e.GetID(),
			Type:      e.GetType(),
			CreatedAt: e.GetCreatedAt().Time,
			Repo:      e.GetRepo().GetName(),
		}
		if ev.Type == PushEventType && e.RawPayload != nil {
			payload, err := e.ParsePayload()
			if err != nil {
				c.log.Debug("parse push payload", "id", ev.ID, "err", err)
			} else if push, ok := payload.(*gh.PushEvent); ok {
				ev.Push = &PushEventPayload{Before: push.GetBefore(), Head: push.GetHead()}
			}
		}
		events = append(events, ev)
	}
	return events, nil
}

// CompareCommits returns the commits between base and head in the order the API lists them.
func (c *Client) CompareCommits(ctx context.Context, repo, base, head string) ([]Commit, error) {
	owner, name, err := SplitRepo(repo)
	if err != nil {
		return nil, err
	}
	cmp, _, err := c.gh.Repositories.CompareCommits(ctx, owner, name, base, head, nil)
	if err != nil {
		return nil, classify(err)
	}
	out := make([]Commit, 0, len(cmp.Commits))
	for _, rc := range cmp.Commits {
		out = append(out, toCommit(rc))
	}
	return out, nil
}

// GetCommit fetches a single commit by sha. Returns ErrNotFound on 404.
func (c *Client) GetCommit(ctx context.Context, repo, sha string) (*Commit, error) {
	owner, name, err := SplitRepo(repo)
	if err != nil {
		return nil, err
	}
	rc, _, err := c.gh.Repositories.GetCommit(ctx, owner, name, sha, nil)
	if err != nil {
		return nil, classify(err)
	}
	commit := toCommit(rc)
	return &commit, nil
}

// ListUserRepos lists repositories of the authenticated user.
func (c *Client) ListUserRepos(ctx context.Context, perPage, page int) ([]Repository, error) {
	opts := &gh.RepositoryListByAuthenticatedUserOptions{
		ListOptions: gh.ListOptions{PerPage: perPage, Page: page},
	}
	repos, _, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, opts)
	if err != nil {
		return nil, classify(err)
	}
	return toRepositories(repos), nil
}

// ListUserOrgs lists organizations of the authenticated user.
func (c *Client) ListUserOrgs(ctx context.Context) ([]Organization, error) {
	orgs, _, err := c.gh.Organizations.List(ctx, "", nil)
	if err != nil {
		return nil, classify(err)
	}
	out := make([]Organization, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, Organization{
			ID:          o.GetID(),
			Login:       o.GetLogin(),
			Description: o.GetDescription(),
			AvatarURL:   o.GetAvatarURL(),
		})
	}
	return out, nil
}

// ListOrgRepos lists repositories of org.
func (c *Client) ListOrgRepos(ctx context.Context, org string, perPage, page int) ([]Repository, error) {
	opts := &gh.RepositoryListByOrgOptions{
		ListOptions: gh.ListOptions{PerPage: perPage, Page: page},
	}
	repos, _, err := c.gh.Repositories.ListByOrg(ctx, org, opts)
	if err != nil {
		return nil, classify(err)
	}
	return toRepositories(repos), nil
}

// ListContributors returns the contributor logins of repo (first page).
func (c *Client) ListContributors(ctx context.Context, repo string, perPage int) ([]string, error) {
	owner, name, err := SplitRepo(repo)
	if err != nil {
		return nil, err
	}
	opts := &gh.ListContributorsOptions{ListOptions: gh.ListOptions{PerPage: perPage}}
	contributors, _, err := c.gh.Repositories.ListContributors(ctx, owner, name, opts)
	if err != nil {
		return nil, classify(err)
	}
	logins := make([]string, 0, len(contributors))
	for _, ct := range contributors {
		if login := ct.GetLogin(); login != "" {
			logins = append(logins, login)
		}
	}
	return logins, nil
}

// RepoTree returns every entry of the default branch tree of repo.
func (c *Client) RepoTree(ctx context.Context, repo string) ([]TreeEntry, error) {
	owner, name, err := SplitRepo(repo)
	if err != nil {
		return nil, err
	}
	r, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, classify(err)
	}
	tree, _, err := c.gh.Git.GetTree(ctx, owner, name, r.GetDefaultBranch(), true)
	if err != nil {
		return nil, classify(err)
	}
	if tree.GetTruncated() {
		c.log.Warn("repository tree truncated", "repo", repo, "entries", len(tree.Entries))
	}
	entries := make([]TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		entries = append(entries, TreeEntry{Path: e.GetPath(), Type: e.GetType(), Size: e.GetSize()})
	}
	return entries, nil
}

// FileContent fetches and decodes a single file. Directories yield ErrNotFound.
func (c *Client) FileContent(ctx context.Context, repo, path string) (*FileContent, error) {
	owner, name, err := SplitRepo(repo)
	if err != nil {
		return nil, err
	}
	file, _, _, err := c.gh.Repositories.GetContents(ctx, owner, name, path, nil)
	if err != nil {
		return nil, classify(err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s is a directory: %w", path, ErrNotFound)
	}
	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &FileContent{
		Path:    file.GetPath(),
		SHA:     file.GetSHA(),
		Size:    file.GetSize(),
		Content: content,
	}, nil
}

// SplitRepo splits an owner/repo full name.
func SplitRepo(fullName string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("%q: %w", fullName, ErrInvalidRepo)
	}
	return owner, repo, nil
}

func toCommit(rc *gh.RepositoryCommit) Commit {
	return Commit{
		SHA:        rc.GetSHA(),
		Message:    rc.GetCommit().GetMessage(),
		AuthorDate: rc.GetCommit().GetAuthor().GetDate().Time,
	}
}

func toRepositories(repos []*gh.Repository) []Repository {
	out := make([]Repository, 0, len(repos))
	for _, r := range repos {
		out = append(out, Repository{
			ID:            r.GetID(),
			Name:          r.GetName(),
			FullName:      r.GetFullName(),
			Owner:         r.GetOwner().GetLogin(),
			Description:   r.GetDescription(),
			Language:      r.GetLanguage(),
			Private:       r.GetPrivate(),
			DefaultBranch: r.GetDefaultBranch(),
			Stars:         r.GetStargazersCount(),
			Forks:         r.GetForksCount(),
			HTMLURL:       r.GetHTMLURL(),
			UpdatedAt:     r.GetUpdatedAt().Time,
		})
	}
	return out
}

// classify maps go-github errors onto the package sentinels.
func classify(err error) error {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
