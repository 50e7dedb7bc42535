package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/repo-insights/internal/github"
	"github.com/repo-insights/internal/insights"
	"github.com/repo-insights/internal/store"
	"go.uber.org/mock/gomock"
)

// fakeGitHub serves a tiny slice of the GitHub REST API and remembers the credentials it saw.
type fakeGitHub struct {
	*httptest.Server
	mu      sync.Mutex
	auths   []string
	queries []string
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	f := &fakeGitHub{}
	pushedAt := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octo/events", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		fmt.Fprintf(w, `[
			{"id":"1","type":"PushEvent","created_at":%q,"repo":{"name":"octo/app"},"payload":{"before":"b1","head":"h1"}},
			{"id":"2","type":"PushEvent","created_at":%q,"repo":{"name":"octo/app"},"payload":{"before":"b0","head":"h0"}}
		]`, pushedAt, pushedAt)
	})
	mux.HandleFunc("/repos/octo/app/compare/b1...h1", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		_, _ = w.Write([]byte(`{"commits":[
			{"sha":"c1","commit":{"message":"older","author":{"date":"2026-01-01T00:00:00Z"}}},
			{"sha":"c2","commit":{"message":"newer\nbody","author":{"date":"2026-01-02T00:00:00Z"}}}
		]}`))
	})
	mux.HandleFunc("/repos/octo/app/compare/b0...h0", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"No common ancestor"}`))
	})
	mux.HandleFunc("/repos/octo/app/commits/h0", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		_, _ = w.Write([]byte(`{"sha":"h0","commit":{"message":"force pushed"}}`))
	})
	mux.HandleFunc("/repos/octo/app", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"app","full_name":"octo/app","default_branch":"main"}`))
	})
	mux.HandleFunc("/repos/octo/app/git/trees/main", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tree":[{"path":"a/b.txt","type":"blob"},{"path":"a/c.txt","type":"blob"}]}`))
	})
	mux.HandleFunc("/repos/octo/app/contents/cmd/main.go", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"type":"file","encoding":"base64","path":"cmd/main.go","sha":"s","size":12,"content":"cGFja2FnZSBtYWlu"}`))
	})
	mux.HandleFunc("/user/repos", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		_, _ = w.Write([]byte(`[{"name":"app","full_name":"octo/app"}]`))
	})
	mux.HandleFunc("/user/orgs", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		_, _ = w.Write([]byte(`[{"id":1,"login":"acme"}]`))
	})
	mux.HandleFunc("/orgs/acme/repos", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		_, _ = w.Write([]byte(`[{"name":"api","full_name":"acme/api"},{"name":"web","full_name":"acme/web"}]`))
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeGitHub) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auths = append(f.auths, r.Header.Get("Authorization"))
	f.queries = append(f.queries, r.URL.Path+"?"+r.URL.RawQuery)
}

func (f *fakeGitHub) lastQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return ""
	}
	return f.queries[len(f.queries)-1]
}

func (f *fakeGitHub) factory() ClientFactory {
	return func(token string) (API, error) {
		return github.NewClient(token, github.WithBaseURL(f.URL))
	}
}

func newTestServer(t *testing.T, s store.Store) (*Server, *fakeGitHub) {
	t.Helper()
	gh := newFakeGitHub(t)
	return NewServer(":0", s, gh.factory(), Options{DefaultToken: "fallback"}), gh
}

func serve(srv *Server, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := store.NewMockStore(ctrl)
	mockStore.EXPECT().Ping(gomock.Any()).Return(nil)

	srv, _ := newTestServer(t, mockStore)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.handleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status want 200 got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("body.status want ok got %s", body["status"])
	}
}

func TestServer_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := store.NewMockStore(ctrl)
	mockStore.EXPECT().CommitsSeenCount(gomock.Any()).Return(int64(42), nil)

	srv, _ := newTestServer(t, mockStore)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	srv.handleStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status want 200 got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if n, _ := body["commits_seen_since_start"].(float64); n != 42 {
		t.Errorf("commits_seen_since_start want 42 got %v", body["commits_seen_since_start"])
	}
}

func TestServer_StatsWithoutStore(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := serve(srv, http.MethodGet, "/stats", nil)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status want 503 got %d", rec.Code)
	}
}

type commitsResponse struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	Commits []struct {
		SHA     string `json:"sha"`
		Message string `json:"message"`
		Repo    string `json:"repo"`
	} `json:"commits"`
}

func TestServer_Commits(t *testing.T) {
	srv, gh := newTestServer(t, nil)

	rec := serve(srv, http.MethodGet, "/api/users/octo/commits", http.Header{"Authorization": {"Bearer user-token"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d: %s", rec.Code, rec.Body)
	}
	var body commitsResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Total != 3 || len(body.Commits) != 3 {
		t.Fatalf("want 3 commits got total=%d len=%d", body.Total, len(body.Commits))
	}
	// h0 is dated with the push time (an hour ago), newer than both compared commits.
	got := []string{body.Commits[0].SHA, body.Commits[1].SHA, body.Commits[2].SHA}
	if strings.Join(got, ",") != "h0,c2,c1" {
		t.Errorf("order want h0,c2,c1 got %v", got)
	}
	if body.Commits[1].Message != "newer" {
		t.Errorf("message want first line 'newer' got %q", body.Commits[1].Message)
	}
	for _, auth := range gh.auths {
		if auth != "Bearer user-token" {
			t.Errorf("request credential want Bearer user-token got %q", auth)
		}
	}
}

func TestServer_CommitsPaged(t *testing.T) {
	srv, gh := newTestServer(t, nil)

	rec := serve(srv, http.MethodGet, "/api/users/octo/commits?page=2&per_page=2", nil)

	var body commitsResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Page != 2 || body.Pages != 2 || len(body.Commits) != 1 || body.Commits[0].SHA != "c1" {
		t.Errorf("unexpected page %+v", body)
	}
	if len(gh.auths) == 0 || gh.auths[0] != "Bearer fallback" {
		t.Errorf("default token should be used without Authorization header, saw %v", gh.auths)
	}
}

func TestServer_Activity(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := serve(srv, http.MethodGet, "/api/users/octo/activity", nil)

	var body struct {
		Days []struct {
			Name    string `json:"name"`
			Commits int    `json:"commits"`
		} `json:"days"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Days) != 7 {
		t.Fatalf("want 7 days got %d", len(body.Days))
	}
	total := 0
	for _, d := range body.Days {
		total += d.Commits
	}
	// c1 and c2 carry January author dates; only h0 falls in the chart.
	if total != 1 {
		t.Errorf("want 1 commit in the chart got %d", total)
	}
}

func TestServer_RejectsUnknownAuthScheme(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := serve(srv, http.MethodGet, "/api/users/octo/commits", http.Header{"Authorization": {"Basic abc"}})

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status want 401 got %d", rec.Code)
	}
}

func TestServer_Tree(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := serve(srv, http.MethodGet, "/api/repos/octo/app/tree", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d: %s", rec.Code, rec.Body)
	}
	var root struct {
		Children []struct {
			Name     string `json:"name"`
			Type     string `json:"type"`
			Children []struct {
				Name string `json:"name"`
			} `json:"children"`
		} `json:"children"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&root); err != nil {
		t.Fatal(err)
	}
	if len(root.Children) != 1 || root.Children[0].Name != "a" || root.Children[0].Type != "dir" {
		t.Fatalf("unexpected tree %+v", root)
	}
	kids := root.Children[0].Children
	if len(kids) != 2 || kids[0].Name != "b.txt" || kids[1].Name != "c.txt" {
		t.Errorf("children want b.txt, c.txt got %+v", kids)
	}
}

func TestServer_Contents(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := serve(srv, http.MethodGet, "/api/repos/octo/app/contents/cmd/main.go", nil)

	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["content"] != "package main" || body["language"] != "go" {
		t.Errorf("unexpected contents %v", body)
	}
}

func TestServer_ContentsNotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := serve(srv, http.MethodGet, "/api/repos/octo/app/contents/missing.txt", nil)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status want 404 got %d", rec.Code)
	}
}

func TestServer_MarkAnalyzed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := store.NewMockStore(ctrl)
	mockStore.EXPECT().MarkRepoAnalyzed(gomock.Any(), "42", "octo/app").Return(true, nil)
	mockStore.EXPECT().AnalyzedRepoCount(gomock.Any(), "42").Return(int64(3), nil)

	srv, _ := newTestServer(t, mockStore)

	rec := serve(srv, http.MethodPost, "/api/users/42/analyzed/octo/app", nil)

	var body struct {
		Inserted bool  `json:"inserted"`
		Count    int64 `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body.Inserted || body.Count != 3 {
		t.Errorf("want inserted=true count=3 got %+v", body)
	}
}

func TestServer_HistoryWithoutStore(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := serve(srv, http.MethodGet, "/api/users/octo/history", nil)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status want 503 got %d", rec.Code)
	}
}

func TestServer_Metrics(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	serve(srv, http.MethodGet, "/api/users/octo/commits", nil)

	rec := serve(srv, http.MethodGet, "/metrics", nil)

	if !strings.Contains(rec.Body.String(), `insights_push_lookups_total{path="fallback"} 1`) {
		t.Errorf("metrics missing fallback lookup:\n%s", rec.Body)
	}
}

func TestServer_CommitsHugePageSize(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := serve(srv, http.MethodGet, "/api/users/octo/commits?page=3&per_page=4611686018427387904", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d: %s", rec.Code, rec.Body)
	}
	var body commitsResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Pages != 1 || len(body.Commits) != 0 {
		t.Errorf("want pages=1 and no commits on page 3 got pages=%d len=%d", body.Pages, len(body.Commits))
	}
}

func TestServer_UserReposPaging(t *testing.T) {
	cases := []struct {
		target string
		want   string
	}{
		{"/api/repos", "/user/repos?page=1&per_page=20"},
		{"/api/repos?page=3&per_page=50", "/user/repos?page=3&per_page=50"},
		{"/api/repos?per_page=1000", "/user/repos?page=1&per_page=100"},
		{"/api/repos?page=-2&per_page=abc", "/user/repos?page=1&per_page=20"},
	}
	for _, tc := range cases {
		srv, gh := newTestServer(t, nil)

		rec := serve(srv, http.MethodGet, tc.target, nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status want 200 got %d: %s", tc.target, rec.Code, rec.Body)
		}
		if got := gh.lastQuery(); got != tc.want {
			t.Errorf("%s: upstream want %s got %s", tc.target, tc.want, got)
		}
		var repos []github.Repository
		if err := json.NewDecoder(rec.Body).Decode(&repos); err != nil {
			t.Fatal(err)
		}
		if len(repos) != 1 || repos[0].FullName != "octo/app" {
			t.Errorf("%s: unexpected repos %+v", tc.target, repos)
		}
	}
}

func TestServer_UserOrgs(t *testing.T) {
	srv, gh := newTestServer(t, nil)

	rec := serve(srv, http.MethodGet, "/api/orgs", http.Header{"Authorization": {"token user-token"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d: %s", rec.Code, rec.Body)
	}
	var orgs []github.Organization
	if err := json.NewDecoder(rec.Body).Decode(&orgs); err != nil {
		t.Fatal(err)
	}
	if len(orgs) != 1 || orgs[0].Login != "acme" {
		t.Errorf("unexpected orgs %+v", orgs)
	}
	if len(gh.auths) != 1 || gh.auths[0] != "Bearer user-token" {
		t.Errorf("credential want Bearer user-token got %v", gh.auths)
	}
}

func TestServer_OrgReposPaging(t *testing.T) {
	srv, gh := newTestServer(t, nil)

	rec := serve(srv, http.MethodGet, "/api/orgs/acme/repos?page=2&per_page=500", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d: %s", rec.Code, rec.Body)
	}
	if got := gh.lastQuery(); got != "/orgs/acme/repos?page=2&per_page=100" {
		t.Errorf("upstream want /orgs/acme/repos?page=2&per_page=100 got %s", got)
	}
	var repos []github.Repository
	if err := json.NewDecoder(rec.Body).Decode(&repos); err != nil {
		t.Fatal(err)
	}
	if len(repos) != 2 || repos[0].FullName != "acme/api" {
		t.Errorf("unexpected repos %+v", repos)
	}
}

func TestServer_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := store.NewMockStore(ctrl)
	committed := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	mockStore.EXPECT().
		StoredCommits(gomock.Any(), "octo", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, since time.Time) ([]store.CommitRow, error) {
			if age := time.Since(since); age < 71*time.Hour || age > 73*time.Hour {
				t.Errorf("since want three days ago got %v", since)
			}
			return []store.CommitRow{
				{Login: "octo", Sha: "c2", Repo: "octo/app", Message: "newer", CommittedAt: committed},
				{Login: "octo", Sha: "c1", Repo: "octo/app", Message: "older", CommittedAt: committed.Add(-time.Hour)},
			}, nil
		})

	srv, _ := newTestServer(t, mockStore)

	rec := serve(srv, http.MethodGet, "/api/users/octo/history?days=3", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d: %s", rec.Code, rec.Body)
	}
	var body struct {
		Total   int                     `json:"total"`
		Commits []insights.CommitRecord `json:"commits"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Total != 2 || len(body.Commits) != 2 {
		t.Fatalf("want 2 commits got total=%d len=%d", body.Total, len(body.Commits))
	}
	if c := body.Commits[0]; c.SHA != "c2" || c.Repo != "octo/app" || !c.Date.Equal(committed) {
		t.Errorf("unexpected first commit %+v", c)
	}
}

func TestServer_HistoryStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := store.NewMockStore(ctrl)
	mockStore.EXPECT().StoredCommits(gomock.Any(), "octo", gomock.Any()).Return(nil, errors.New("connection reset"))

	srv, _ := newTestServer(t, mockStore)

	rec := serve(srv, http.MethodGet, "/api/users/octo/history", nil)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status want 500 got %d", rec.Code)
	}
}
