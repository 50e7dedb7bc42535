package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration from environment.
type Config struct {
	GHToken           string
	GitHubAPIURL      string
	DatabaseURL       string
	HTTPAddr          string
	WatchUser         string
	PollIntervalSec   int
	ConsumerWorkers   int
	ChannelSize       int
	LookupWorkers     int
	WindowDays        int
	RequestTimeoutSec int
}

// Default values when env vars are unset.
const (
	DefaultPollIntervalSec   = 300
	DefaultHTTPAddr          = ":8080"
	DefaultConsumerWorkers   = 3
	DefaultChannelSize       = 1000
	DefaultLookupWorkers     = 1
	DefaultWindowDays        = 7
	DefaultRequestTimeoutSec = 30
)

// Load reads configuration from the environment.
// Uses defaults for optional values when unset or invalid.
func Load() *Config {
	c := &Config{
		GHToken:           os.Getenv("GH_TOKEN"),
		GitHubAPIURL:      os.Getenv("GITHUB_API_URL"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		WatchUser:         os.Getenv("WATCH_USER"),
		HTTPAddr:          DefaultHTTPAddr,
		PollIntervalSec:   DefaultPollIntervalSec,
		ConsumerWorkers:   DefaultConsumerWorkers,
		ChannelSize:       DefaultChannelSize,
		LookupWorkers:     DefaultLookupWorkers,
		WindowDays:        DefaultWindowDays,
		RequestTimeoutSec: DefaultRequestTimeoutSec,
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	positiveInt("POLL_INTERVAL_SEC", &c.PollIntervalSec)
	positiveInt("CONSUMER_WORKERS", &c.ConsumerWorkers)
	positiveInt("CHANNEL_SIZE", &c.ChannelSize)
	positiveInt("LOOKUP_WORKERS", &c.LookupWorkers)
	positiveInt("WINDOW_DAYS", &c.WindowDays)
	positiveInt("REQUEST_TIMEOUT_SEC", &c.RequestTimeoutSec)
	return c
}

// PollInterval is the delay between background syncs.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSec) * time.Second
}

// Window is the trailing period of push events considered recent.
func (c *Config) Window() time.Duration {
	return time.Duration(c.WindowDays) * 24 * time.Hour
}

// RequestTimeout bounds a single GitHub API call.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// SyncEnabled reports whether the watched user's commits can be synced.
// The sync needs both a watched user and a database.
func (c *Config) SyncEnabled() bool {
	return c.WatchUser != "" && c.DatabaseURL != ""
}

func positiveInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = n
		}
	}
}
