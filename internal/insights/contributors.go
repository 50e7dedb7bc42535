package insights

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/repo-insights/internal/github"
)

const (
	contributorReposLimit = 100
	contributorsPerRepo   = 100
)

// CountContributors returns the number of distinct contributor logins across
// the first page of org's repositories. A repository whose contributors cannot
// be listed is skipped; only a failed repository listing is an error.
func CountContributors(ctx context.Context, f github.ContributorsFetcher, org string) (int, error) {
	log := slog.Default().With("org", org)
	repos, err := f.ListOrgRepos(ctx, org, contributorReposLimit, 1)
	if err != nil {
		return 0, fmt.Errorf("list repos of %s: %w", org, err)
	}
	unique := make(map[string]struct{})
	for _, r := range repos {
		name := r.FullName
		if name == "" {
			name = org + "/" + r.Name
		}
		logins, err := f.ListContributors(ctx, name, contributorsPerRepo)
		if err != nil {
			log.Debug("list contributors, skipping repo", "repo", name, "err", err)
			continue
		}
		for _, login := range logins {
			unique[login] = struct{}{}
		}
	}
	return len(unique), nil
}
