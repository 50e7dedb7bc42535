package insights

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/repo-insights/internal/github"
)

func TestActivity_BucketsLastSevenUTCDays(t *testing.T) {
	records := []CommitRecord{
		{SHA: "a", Date: testNow},
		{SHA: "b", Date: testNow.Add(-1 * time.Hour)},
		{SHA: "c", Date: testNow.AddDate(0, 0, -6)},
		{SHA: "d", Date: testNow.AddDate(0, 0, -7)},
		// 23:30 on the 18th in UTC-2 is the 19th in UTC
		{SHA: "e", Date: time.Date(2026, 10, 18, 23, 30, 0, 0, time.FixedZone("m2", -2*3600))},
	}

	days := Activity(records, testNow)

	require.Len(t, days, ActivityDays)
	assert.Equal(t, time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC), days[0].Date)
	assert.Equal(t, "Tue", days[0].Name)
	assert.Equal(t, 1, days[0].Commits)
	assert.Equal(t, "Mon", days[6].Name)
	assert.Equal(t, 3, days[6].Commits)
	total := 0
	for _, d := range days {
		total += d.Commits
	}
	assert.Equal(t, 4, total, "records older than the chart are not counted")
}

func TestPage(t *testing.T) {
	records := make([]CommitRecord, 23)
	for i := range records {
		records[i].SHA = string(rune('a' + i))
	}

	assert.Len(t, Page(records, 1, 10), 10)
	assert.Equal(t, "k", Page(records, 2, 10)[0].SHA)
	assert.Len(t, Page(records, 3, 10), 3)
	assert.Empty(t, Page(records, 4, 10))
	assert.Empty(t, Page(records, 0, 10))
	assert.Len(t, Page(records, 1, 0), DefaultPerPage)
	assert.Equal(t, 3, PageCount(len(records), 10))
	assert.Equal(t, 0, PageCount(0, 10))
	assert.Len(t, Preview(records), PreviewSize)
	assert.Len(t, Preview(records[:2]), 2)
}

func TestPage_HugePageSizeDoesNotOverflow(t *testing.T) {
	records := make([]CommitRecord, 5)

	assert.Empty(t, Page(records, 3, 1<<62))
	assert.Empty(t, Page(records, math.MaxInt, 2))
	assert.Len(t, Page(records, 1, math.MaxInt), 5)
	assert.Equal(t, 1, PageCount(5, math.MaxInt))
	assert.Equal(t, 3, PageCount(5, 2))
	assert.Equal(t, 1, PageCount(math.MaxInt, math.MaxInt))
}

func TestCountContributors_UniqueLoginsSkippingFailedRepos(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := github.NewMockContributorsFetcher(ctrl)
	f.EXPECT().ListOrgRepos(gomock.Any(), "acme", 100, 1).Return([]github.Repository{
		{Name: "api", FullName: "acme/api"},
		{Name: "web"},
		{Name: "secret", FullName: "acme/secret"},
	}, nil)
	f.EXPECT().ListContributors(gomock.Any(), "acme/api", 100).Return([]string{"ann", "bob"}, nil)
	f.EXPECT().ListContributors(gomock.Any(), "acme/web", 100).Return([]string{"bob", "cid"}, nil)
	f.EXPECT().ListContributors(gomock.Any(), "acme/secret", 100).Return(nil, github.ErrNotFound)

	n, err := CountContributors(context.Background(), f, "acme")

	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCountContributors_RepoListingFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := github.NewMockContributorsFetcher(ctrl)
	f.EXPECT().ListOrgRepos(gomock.Any(), "acme", 100, 1).Return(nil, errors.New("forbidden"))

	_, err := CountContributors(context.Background(), f, "acme")

	assert.Error(t, err)
}

func TestCountContributors_LogsSkippedRepoWithOrg(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctrl := gomock.NewController(t)
	f := github.NewMockContributorsFetcher(ctrl)
	f.EXPECT().ListOrgRepos(gomock.Any(), "acme", 100, 1).Return([]github.Repository{{Name: "secret", FullName: "acme/secret"}}, nil)
	f.EXPECT().ListContributors(gomock.Any(), "acme/secret", 100).Return(nil, github.ErrNotFound)

	n, err := CountContributors(context.Background(), f, "acme")

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, buf.String(), `"org":"acme"`)
	assert.Contains(t, buf.String(), `"repo":"acme/secret"`)
}
