package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/repo-insights/internal/config"
	"github.com/repo-insights/internal/github"
	"github.com/repo-insights/internal/insights"
	"github.com/repo-insights/internal/pubsub"
	"github.com/repo-insights/internal/server"
	"github.com/repo-insights/internal/store"
)

func main() {
	cfg := config.Load()
	slog.Info("starting", "http_addr", cfg.HTTPAddr, "watch_user", cfg.WatchUser, "lookup_workers", cfg.LookupWorkers, "window_days", cfg.WindowDays)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clients := func(token string) (server.API, error) {
		return github.NewClient(token, github.WithBaseURL(cfg.GitHubAPIURL), github.WithTimeout(cfg.RequestTimeout()))
	}
	aggOpts := []insights.Option{
		insights.WithWindow(cfg.Window()),
		insights.WithWorkers(cfg.LookupWorkers),
	}

	var st store.Store
	var wg sync.WaitGroup
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("connect to database", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		pg := store.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			slog.Error("migrate database", "err", err)
			os.Exit(1)
		}
		st = pg
		slog.Info("database connected")

		if cfg.SyncEnabled() {
			gh, err := clients(cfg.GHToken)
			if err != nil {
				slog.Error("create github client", "err", err)
				os.Exit(1)
			}
			agg := insights.NewAggregator(gh, gh, aggOpts...)

			// Bounded channel for backpressure
			jobs := make(chan pubsub.CommitJob, cfg.ChannelSize)
			cons := pubsub.NewConsumer(st, jobs)
			for i := 0; i < cfg.ConsumerWorkers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					cons.Run(ctx)
				}()
			}
			slog.Info("consumer workers started", "workers", cfg.ConsumerWorkers)

			prod := pubsub.NewProducer(agg, cfg.WatchUser, jobs, cfg.PollInterval())
			go prod.Run(ctx)
			slog.Info("producer started", "login", cfg.WatchUser, "poll_interval", cfg.PollInterval())
		}
	} else {
		slog.Warn("DATABASE_URL not set, history and analyzed repos endpoints are disabled")
		if cfg.WatchUser != "" {
			slog.Warn("WATCH_USER set without DATABASE_URL, background sync is disabled", "watch_user", cfg.WatchUser)
		}
	}

	srv := server.NewServer(cfg.HTTPAddr, st, clients, server.Options{
		DefaultToken: cfg.GHToken,
		Aggregation:  aggOpts,
	})
	go func() {
		slog.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server", "err", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	slog.Info("shutting down", "signal", "received")

	cancel()
	wg.Wait()
	slog.Info("consumer workers stopped")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http server shutdown", "err", err)
	} else {
		slog.Info("http server stopped")
	}
}
