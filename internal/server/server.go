package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/repo-insights/internal/filetree"
	"github.com/repo-insights/internal/github"
	"github.com/repo-insights/internal/insights"
	"github.com/repo-insights/internal/store"
)

const (
	defaultReposPerPage = 20
	maxPerPage          = 100
)

var errNoStore = errors.New("storage is not configured")

// API is the GitHub surface the dashboard needs (e.g. github.Client).
type API interface {
	github.EventsFetcher
	github.CommitFetcher
	github.ContributorsFetcher
	ListUserRepos(ctx context.Context, perPage, page int) ([]github.Repository, error)
	ListUserOrgs(ctx context.Context) ([]github.Organization, error)
	RepoTree(ctx context.Context, repo string) ([]github.TreeEntry, error)
	FileContent(ctx context.Context, repo, path string) (*github.FileContent, error)
}

// ClientFactory builds an API bound to one bearer credential.
type ClientFactory func(token string) (API, error)

// Options tunes the server. Zero values are usable.
type Options struct {
	DefaultToken string // used when a request carries no Authorization header
	Aggregation  []insights.Option
}

// Server serves the dashboard JSON API plus /health, /stats and /metrics.
// store may be nil; endpoints that need it then answer 503.
type Server struct {
	store    store.Store
	clients  ClientFactory
	opts     Options
	metrics  *insights.Metrics
	requests *prometheus.CounterVec
	http     *http.Server
}

// NewServer returns an HTTP server that uses the given Store and GitHub clients.
func NewServer(addr string, s store.Store, clients ClientFactory, opts Options) *Server {
	registry := prometheus.NewRegistry()
	srv := &Server{
		store:   s,
		clients: clients,
		opts:    opts,
		metrics: insights.NewMetrics(registry),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "insights",
			Name:      "http_requests_total",
			Help:      "Served API requests by route and status code.",
		}, []string{"route", "code"}),
	}
	registry.MustRegister(srv.requests)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", srv.handleHealth)
	mux.HandleFunc("/stats", srv.handleStats)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	srv.route(mux, "GET /api/users/{user}/commits", srv.handleCommits)
	srv.route(mux, "GET /api/users/{user}/activity", srv.handleActivity)
	srv.route(mux, "GET /api/users/{user}/history", srv.handleHistory)
	srv.route(mux, "GET /api/users/{user}/analyzed", srv.handleAnalyzedCount)
	srv.route(mux, "POST /api/users/{user}/analyzed/{owner}/{repo}", srv.handleMarkAnalyzed)
	srv.route(mux, "GET /api/repos", srv.handleUserRepos)
	srv.route(mux, "GET /api/orgs", srv.handleUserOrgs)
	srv.route(mux, "GET /api/orgs/{org}/repos", srv.handleOrgRepos)
	srv.route(mux, "GET /api/orgs/{org}/contributors", srv.handleOrgContributors)
	srv.route(mux, "GET /api/repos/{owner}/{repo}/tree", srv.handleTree)
	srv.route(mux, "GET /api/repos/{owner}/{repo}/contents/{path...}", srv.handleContents)
	srv.http = &http.Server{Addr: addr, Handler: mux}
	return srv
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start starts the HTTP server (blocking).
func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// statusRecorder keeps the status code for the request counter.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) route(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		h(rec, r)
		s.requests.WithLabelValues(pattern, strconv.Itoa(rec.code)).Inc()
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		slog.Debug("health check method not allowed", "method", r.Method)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			slog.Warn("health check failed", "err", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		slog.Debug("stats method not allowed", "method", r.Method)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.store == nil {
		http.Error(w, errNoStore.Error(), http.StatusServiceUnavailable)
		return
	}
	seen, err := s.store.CommitsSeenCount(r.Context())
	if err != nil {
		slog.Error("stats: commits seen", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	slog.Debug("stats served", "commits_seen", seen)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"commits_seen_since_start": seen,
	})
}

func (s *Server) handleCommits(w http.ResponseWriter, r *http.Request) {
	api, ok := s.client(w, r)
	if !ok {
		return
	}
	records := s.aggregator(api).Recent(r.Context(), r.PathValue("user"))

	resp := map[string]interface{}{
		"total":   len(records),
		"preview": insights.Preview(records),
	}
	if r.URL.Query().Has("page") {
		perPage := min(queryInt(r, "per_page", insights.DefaultPerPage), maxPerPage)
		page := queryInt(r, "page", 1)
		resp["commits"] = insights.Page(records, page, perPage)
		resp["page"] = page
		resp["pages"] = insights.PageCount(len(records), perPage)
	} else {
		resp["commits"] = records
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	api, ok := s.client(w, r)
	if !ok {
		return
	}
	records := s.aggregator(api).Recent(r.Context(), r.PathValue("user"))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"days": insights.Activity(records, time.Now()),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, errNoStore)
		return
	}
	days := queryInt(r, "days", 7)
	rows, err := s.store.StoredCommits(r.Context(), r.PathValue("user"), time.Now().AddDate(0, 0, -days))
	if err != nil {
		slog.Error("history: stored commits", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	records := make([]insights.CommitRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, insights.CommitRecord{SHA: row.Sha, Message: row.Message, Repo: row.Repo, Date: row.CommittedAt})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"commits": records, "total": len(records)})
}

func (s *Server) handleMarkAnalyzed(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, errNoStore)
		return
	}
	user := r.PathValue("user")
	repo := r.PathValue("owner") + "/" + r.PathValue("repo")
	inserted, err := s.store.MarkRepoAnalyzed(r.Context(), user, repo)
	if err != nil {
		slog.Error("mark analyzed", "user", user, "repo", repo, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	count, err := s.store.AnalyzedRepoCount(r.Context(), user)
	if err != nil {
		slog.Error("analyzed count", "user", user, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if inserted {
		slog.Debug("repo marked analyzed", "user", user, "repo", repo, "count", count)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"inserted": inserted, "count": count})
}

func (s *Server) handleAnalyzedCount(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, errNoStore)
		return
	}
	count, err := s.store.AnalyzedRepoCount(r.Context(), r.PathValue("user"))
	if err != nil {
		slog.Error("analyzed count", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"count": count})
}

func (s *Server) handleUserRepos(w http.ResponseWriter, r *http.Request) {
	api, ok := s.client(w, r)
	if !ok {
		return
	}
	repos, err := api.ListUserRepos(r.Context(), perPage(r), queryInt(r, "page", 1))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, repos)
}

func (s *Server) handleUserOrgs(w http.ResponseWriter, r *http.Request) {
	api, ok := s.client(w, r)
	if !ok {
		return
	}
	orgs, err := api.ListUserOrgs(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

func (s *Server) handleOrgRepos(w http.ResponseWriter, r *http.Request) {
	api, ok := s.client(w, r)
	if !ok {
		return
	}
	repos, err := api.ListOrgRepos(r.Context(), r.PathValue("org"), perPage(r), queryInt(r, "page", 1))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, repos)
}

func (s *Server) handleOrgContributors(w http.ResponseWriter, r *http.Request) {
	api, ok := s.client(w, r)
	if !ok {
		return
	}
	org := r.PathValue("org")
	n, err := insights.CountContributors(r.Context(), api, org)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"org": org, "contributors": n})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	api, ok := s.client(w, r)
	if !ok {
		return
	}
	entries, err := api.RepoTree(r.Context(), r.PathValue("owner")+"/"+r.PathValue("repo"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, filetree.Build(filetree.FromTree(entries)))
}

func (s *Server) handleContents(w http.ResponseWriter, r *http.Request) {
	api, ok := s.client(w, r)
	if !ok {
		return
	}
	file, err := api.FileContent(r.Context(), r.PathValue("owner")+"/"+r.PathValue("repo"), r.PathValue("path"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"path":     file.Path,
		"sha":      file.SHA,
		"size":     file.Size,
		"language": filetree.Language(file.Path),
		"content":  file.Content,
	})
}

// client builds a GitHub client for the request credential, falling back to the default token.
func (s *Server) client(w http.ResponseWriter, r *http.Request) (API, bool) {
	token := s.opts.DefaultToken
	if auth := r.Header.Get("Authorization"); auth != "" {
		scheme, value, _ := strings.Cut(auth, " ")
		if (!strings.EqualFold(scheme, "bearer") && !strings.EqualFold(scheme, "token")) || value == "" {
			http.Error(w, "unsupported authorization scheme", http.StatusUnauthorized)
			return nil, false
		}
		token = value
	}
	api, err := s.clients(token)
	if err != nil {
		slog.Error("create github client", "err", err)
		http.Error(w, "github client unavailable", http.StatusInternalServerError)
		return nil, false
	}
	return api, true
}

func (s *Server) aggregator(api API) *insights.Aggregator {
	opts := append([]insights.Option{insights.WithMetrics(s.metrics)}, s.opts.Aggregation...)
	return insights.NewAggregator(api, api, opts...)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusBadGateway
	switch {
	case errors.Is(err, github.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, github.ErrRateLimited):
		code = http.StatusTooManyRequests
	case errors.Is(err, github.ErrInvalidRepo):
		code = http.StatusBadRequest
	case errors.Is(err, errNoStore):
		code = http.StatusServiceUnavailable
	}
	if code >= http.StatusInternalServerError {
		slog.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		slog.Debug("request rejected", "path", r.URL.Path, "code", code, "err", err)
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func perPage(r *http.Request) int {
	return min(queryInt(r, "per_page", defaultReposPerPage), maxPerPage)
}
