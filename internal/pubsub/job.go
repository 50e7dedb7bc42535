package pubsub

import "github.com/repo-insights/internal/insights"

// CommitJob is a unit of work for the consumer: persist this commit for the watched login.
type CommitJob struct {
	Login  string
	Record insights.CommitRecord
}
